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
	"time"

	ctrl "sigs.k8s.io/controller-runtime"
)

// Action tells the driver when, if ever, a resource should be looked at again.
type Action struct {
	requeueAfter time.Duration
}

// NoRequeue waits for the next watch event.
func NoRequeue() Action {
	return Action{}
}

// RequeueAfter schedules another reconciliation after d. Non-positive values mean NoRequeue.
func RequeueAfter(d time.Duration) Action {
	if d <= 0 {
		return NoRequeue()
	}
	return Action{requeueAfter: d}
}

func (a Action) IsRequeue() bool {
	return a.requeueAfter > 0
}

func (a Action) RequeueDelay() time.Duration {
	return a.requeueAfter
}

func (a Action) Result() ctrl.Result {
	return ctrl.Result{RequeueAfter: a.requeueAfter}
}

func (a Action) String() string {
	if !a.IsRequeue() {
		return "await change"
	}
	return "requeue after " + a.requeueAfter.String()
}
