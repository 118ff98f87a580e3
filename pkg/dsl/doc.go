// Package dsl is the fluent front-end over the espalier registration
// surface. It trades the Builder's eager per-call errors for chainable
// declarations: errors are collected and reported once, from Build.
//
//	b := dsl.New("turnstile")
//	locked := b.State("Locked", espalier.Initial())
//	unlocked := b.State("Unlocked")
//	coin := b.Input("coin")
//	thank := b.Output("thank", thankFn)
//
//	locked.Upon(coin, dsl.Enter(unlocked), dsl.Outputs(thank))
//
//	machine, err := b.Build()
package dsl
