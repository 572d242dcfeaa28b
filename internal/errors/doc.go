// Package errors provides structured errors for the bfrpg rules engine.
//
// Errors carry a code, a user-facing message, an optional cause and
// metadata:
//
//	err := errors.NotFoundf("item %s not found", itemID).
//	    WithMeta("actor_id", actor.ID)
//
// Wrapping keeps the code of the innermost structured error:
//
//	if err := r.evaluator.Evaluate(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to evaluate roll")
//	}
//
// # Formula errors
//
// Malformed dice or target-number expressions are reported with
// CodeInvalidFormula. They are recoverable: the roll workflows turn them
// into warnings and treat the affected value as absent.
//
//	err := errors.Formula("d20+@str.bonus", "unresolved variable @str.bonus")
//	if errors.IsFormula(err) {
//	    formula := errors.GetMeta(err)[errors.MetaFormula]
//	}
//
// # Validation
//
// Dependency configs are checked with the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Resolver == nil {
//	    vb.RequiredField("Resolver")
//	}
//	return vb.Build()
//
// Derivation code in package rules never returns errors; missing or
// malformed inputs are coerced to zero values there.
package errors
