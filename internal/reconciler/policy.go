/*
Copyright 2023.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reconciler

import (
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
)

// DefaultRetryDelay is how long a failed resource waits before it is reconciled again.
const DefaultRetryDelay = 15 * time.Second

// ErrorPolicy maps a failed reconciliation to the retry action.
type ErrorPolicy func(ctx context.Context, obj client.Object, err error) Action

// FixedDelay retries every failure after delay, whatever its kind.
// A non-positive delay falls back to DefaultRetryDelay.
func FixedDelay(delay time.Duration) ErrorPolicy {
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	return func(ctx context.Context, obj client.Object, err error) Action {
		log.FromContext(ctx).Info("scheduling retry",
			"namespace", obj.GetNamespace(),
			"name", obj.GetName(),
			"reason", operrors.Reason(err),
			"error", err.Error(),
			"requeueAfter", delay,
		)
		return RequeueAfter(delay)
	}
}
