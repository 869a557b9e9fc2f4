package common

import (
	"context"

	"github.com/opdev/subreconciler"
	"k8s.io/apimachinery/pkg/util/validation/field"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
)

// RunSteps runs steps in order until one fails or asks to halt. Halting without an
// error is a success; requeue timing is left to the caller's error policy.
func RunSteps(ctx context.Context, steps ...subreconciler.Fn) error {
	for _, step := range steps {
		result, err := step(ctx)
		if subreconciler.ShouldHaltOrRequeue(result, err) {
			return err
		}
	}
	return nil
}

// ValidationError converts the result of a spec validation into a UserInputError,
// or nil when errs is empty.
func ValidationError(errs field.ErrorList) error {
	if len(errs) == 0 {
		return nil
	}
	return operrors.NewUserInputError(errs[0].Field, errs.ToAggregate().Error())
}
