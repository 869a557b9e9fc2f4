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

package main

import (
	"flag"
	"os"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that exec-entrypoint and run can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	sftpgov1alpha1 "github.com/snapp-incubator/sftpgo-operator/api/v1alpha1"
	"github.com/snapp-incubator/sftpgo-operator/internal/config"
	"github.com/snapp-incubator/sftpgo-operator/internal/controllers/sftpgofolder"
	"github.com/snapp-incubator/sftpgo-operator/internal/controllers/sftpgouser"
	"github.com/snapp-incubator/sftpgo-operator/internal/predicates"
	"github.com/snapp-incubator/sftpgo-operator/internal/reconciler"
	"github.com/snapp-incubator/sftpgo-operator/internal/rgwclient"
	"github.com/snapp-incubator/sftpgo-operator/internal/s3_agent"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
	//+kubebuilder:scaffold:imports
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))

	utilruntime.Must(sftpgov1alpha1.AddToScheme(scheme))
	//+kubebuilder:scaffold:scheme
}

func main() {
	var (
		metricsAddr          string
		enableLeaderElection bool
		probeAddr            string
		configPath           string
	)

	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metric endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", false,
		"Enable leader election for controller manager. "+
			"Enabling this will ensure there is only one active controller manager.")
	flag.StringVar(&configPath, "config", "hack/config.yaml", "Path to config file.")
	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	cfg, err := config.GetConfig(configPath)
	if err != nil {
		setupLog.Error(err, "failed to get config")
		os.Exit(1)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                 scheme,
		MetricsBindAddress:     metricsAddr,
		Port:                   9443,
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       "5f2d6a1e.snappcloud.io",
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	shared := &reconciler.SharedContext{
		Client:   mgr.GetClient(),
		Recorder: mgr.GetEventRecorderFor("sftpgo-operator"),
		Sftpgo: sftpgoclient.NewMultiClient(cfg.SftpgoServers(), sftpgoclient.Options{
			RequestTimeout:    cfg.RequestTimeout(),
			TokenSafetyMargin: cfg.TokenSafetyMargin(),
		}),
		ClusterName:      cfg.ClusterName,
		NewBucketEnsurer: s3_agent.NewS3Agent,
		RequestTimeout:   cfg.RequestTimeout(),
	}

	if cfg.RgwEnabled() {
		rgw, err := rgwclient.NewRgwClient(cfg.Rgw.Endpoint, cfg.Rgw.AccessKey, cfg.Rgw.SecretKey, cfg.RequestTimeout())
		if err != nil {
			setupLog.Error(err, "failed to create rgw connection")
			os.Exit(1)
		}
		shared.Rgw = rgw
		shared.RgwEndpoint = cfg.Rgw.Endpoint
	} else {
		setupLog.Info("rgw endpoint not configured, S3 file systems need a credentials secret")
	}

	customize := func(o *reconciler.Options) {
		o.MaxConcurrentReconciles = cfg.MaxConcurrentReconciles
		o.ErrorPolicy = reconciler.FixedDelay(cfg.RetryDelay())
		if cfg.OnlyConfiguredServers {
			o.Predicates = append(o.Predicates, predicate.Predicate(predicates.NewServerPredicate(shared.Sftpgo.Servers()...)))
		}
	}

	setupLog.Info("configured SFTPGo servers", "servers", shared.Sftpgo.Servers())

	if err = sftpgouser.SetupWithManager(mgr, shared, customize); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", sftpgouser.Kind)
		os.Exit(1)
	}

	if err = sftpgofolder.SetupWithManager(mgr, shared, customize); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", sftpgofolder.Kind)
		os.Exit(1)
	}

	// Setup webhooks
	if os.Getenv("ENABLE_WEBHOOKS") != "false" {
		if timeout := cfg.ValidationWebhookTimeout(); timeout > 0 {
			sftpgov1alpha1.ValidationTimeout = timeout
		}
		if err = (&sftpgov1alpha1.SftpgoUser{}).SetupWebhookWithManager(mgr); err != nil {
			setupLog.Error(err, "unable to create webhook", "webhook", sftpgouser.Kind)
			os.Exit(1)
		}
		if err = (&sftpgov1alpha1.SftpgoFolder{}).SetupWebhookWithManager(mgr); err != nil {
			setupLog.Error(err, "unable to create webhook", "webhook", sftpgofolder.Kind)
			os.Exit(1)
		}
	}

	//+kubebuilder:scaffold:builder

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}
