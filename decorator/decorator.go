// Package decorator provides wrappers that add behavior to an operation
// without modifying the operation's own code.
//
// Every wrapper is built as a constructor returning an operation.WrapFunc: the
// constructor captures configuration, the WrapFunc captures the wrapped
// operation once, and Execute runs pre-work, the original operation and
// post-work. Unless a wrapper documents otherwise, the input is forwarded
// unaltered and the original result and error are returned unchanged.
package decorator
