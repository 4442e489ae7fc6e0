// Package reactive is a small observable-value layer: values that change over
// time and bindings recomputed from them.
//
// Highlights:
// - Var: settable source, NewVar/Set/Update
// - Constant: value that never changes
// - Binding/Map/FlatMap: derived values, recomputed on dependency change
// - Dependencies: declare the explicit dependency set of a binding
// - WithName/WithLogger/WithHooks: binding options
//
// Change notifications run synchronously on the goroutine that called Set.
// There is no scheduler, batching or automatic dependency discovery: a
// binding reacts only to the dependencies it was declared with.
package reactive
