// Package statsview is an optional package that is only functional when the
// statsview build constraint is present.
//
// It provides a HTTP server running locally offering runtime statistics of the
// emulation process. Underlying functionality is provided by
// "github.com/go-echarts/statsview".
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12600/debug/statsview
package statsview

// Address is the listening address of the statistics server.
const Address = "localhost:12600"

const url = "/debug/statsview"
