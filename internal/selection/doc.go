// Package selection implements the interactive queue picker.
//
// Each round lists the live queues, numbers them (Assign), parses one line of
// input (Parser), resolves it against the numbering (Resolve) and applies the
// configured QueueAction to the chosen queues (Executor). Ordinals of queues
// that are gone for good are retired so they are never shown again during the
// same run. Loop ties the rounds together and also serves the non-interactive
// path where queue names come from the command line.
package selection
