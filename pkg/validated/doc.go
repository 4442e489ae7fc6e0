// Package validated contains a three-state result type, Validated[T], and the
// compositions that build one validated value out of several others.
//
// A Validated[T] is exactly one of:
// - Valid: holds a T
// - Invalid: failed here, with a non-empty human readable reason
// - InvalidComponent: failed because a value it depends on failed; that
// value already explained itself, so no reason is repeated
//
// Highlights:
// - Valid/Invalid/InvalidComponent/Fail: construct Validated[T]
// - Fold/Map/FlatMap: total matching and transformation, identity on failures
// - OrElse/Or/IfValid/IfInvalid/OrZero: defaults and side effects
// - Force/ForceWith/ExpectInvalid: assertions that panic with *ValidationError
// - FromPtr/FromOk/Of/Validate/AndValidate: lift Go values into Validated
// - FilterValid/Valids/Count: work with collections of results
// - Compose and Compose1..Compose5: run a body that unwraps results with Get
// and stops at the first failure
//
// Inside Compose, Get on a failed value ends the whole composition with
// InvalidComponent, and the Body termination methods (Terminate, Yield, Error,
// InvalidComponent) end it with the given result:
//
//	user := validated.Compose(func(b *validated.Body[User]) User {
//		name := nameResult.Get(b)
//		age := ageResult.Get(b)
//		if age < 18 && name != "" {
//			return b.Error("must be of age")
//		}
//		return User{Name: name, Age: age}
//	})
package validated
