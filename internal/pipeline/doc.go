// Package pipeline runs the sales reports as a sequence of steps.
//
// Each report is a Step that reads the immutable dataset and stores its
// table in the ReportSet of one reporting year. A Pipeline executes the
// steps in order with consistent logging, error recording and context
// cancellation between steps. BatchProcessor runs one pipeline per
// reporting year concurrently using errgroup.
package pipeline
