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

	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/snapp-incubator/sftpgo-operator/internal/rgwclient"
	"github.com/snapp-incubator/sftpgo-operator/internal/s3_agent"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
)

// SharedContext holds the collaborators every reconciler needs. It is built once at
// startup and must not be mutated afterwards.
type SharedContext struct {
	Client   client.Client
	Recorder record.EventRecorder
	Sftpgo   *sftpgoclient.MultiClient

	// Rgw is nil when RGW credential provisioning is disabled.
	Rgw         rgwclient.RgwClient
	RgwEndpoint string
	ClusterName string

	NewBucketEnsurer s3_agent.Factory
	RequestTimeout   time.Duration
}

func (s *SharedContext) RgwEnabled() bool {
	return s.Rgw != nil
}
