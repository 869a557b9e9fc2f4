package common

import (
	"context"

	sftpgov1alpha1 "github.com/snapp-incubator/sftpgo-operator/api/v1alpha1"
	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
	"github.com/snapp-incubator/sftpgo-operator/internal/reconciler"
	"github.com/snapp-incubator/sftpgo-operator/internal/s3_agent"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

// Owner identifies the resource a file system belongs to.
type Owner struct {
	Kind      string
	Namespace string
	Name      string
}

// BuildFileSystem resolves every secret fs references and returns the SFTPGo payload.
// S3 buckets are created on the way when requested.
func BuildFileSystem(ctx context.Context, shared *reconciler.SharedContext, owner Owner, fs *sftpgov1alpha1.FileSystem) (sftpgoclient.FileSystem, error) {
	const fsPath = "spec.fileSystem"

	switch {
	case fs.Local != nil:
		return sftpgoclient.FileSystem{
			Provider: sftpgoclient.FileSystemProviderLocal,
			OSConfig: &sftpgoclient.OSFsConfig{
				ReadBufferSize:  derefOr(fs.Local.ReadBufferSize, 0),
				WriteBufferSize: derefOr(fs.Local.WriteBufferSize, 0),
			},
		}, nil

	case fs.AzureBlobStorage != nil:
		blob := fs.AzureBlobStorage
		config := &sftpgoclient.AzBlobFsConfig{
			Endpoint:            blob.Endpoint,
			KeyPrefix:           blob.KeyPrefix,
			UploadPartSize:      derefOr(blob.UploadPartSize, sftpgov1alpha1.DefaultAzurePartSize),
			UploadConcurrency:   derefOr(blob.UploadConcurrency, sftpgov1alpha1.DefaultAzureConcurrency),
			DownloadPartSize:    derefOr(blob.DownloadPartSize, sftpgov1alpha1.DefaultAzurePartSize),
			DownloadConcurrency: derefOr(blob.DownloadConcurrency, sftpgov1alpha1.DefaultAzureConcurrency),
			AccessTier:          string(blob.AccessTier),
			UseEmulator:         blob.UseEmulator,
		}

		authPath := fsPath + ".azureBlobStorage.authorization"
		switch auth := blob.Authorization; {
		case auth.SharedKey != nil:
			key, err := SecretValue(ctx, shared.Client, owner.Namespace, authPath+".sharedKey.accountKeySecretRef", auth.SharedKey.AccountKeySecretRef)
			if err != nil {
				return sftpgoclient.FileSystem{}, err
			}
			config.AccountName = auth.SharedKey.AccountName
			config.Container = auth.SharedKey.Container
			config.AccountKey = sftpgoclient.PlainSecret(key)
		case auth.SASURLSecretRef != nil:
			url, err := SecretValue(ctx, shared.Client, owner.Namespace, authPath+".sasUrlSecretRef", *auth.SASURLSecretRef)
			if err != nil {
				return sftpgoclient.FileSystem{}, err
			}
			config.SASURL = sftpgoclient.PlainSecret(url)
		default:
			return sftpgoclient.FileSystem{}, operrors.NewUserInputError(authPath, "one of sharedKey or sasUrlSecretRef must be set")
		}

		return sftpgoclient.FileSystem{
			Provider:     sftpgoclient.FileSystemProviderAzureBlobStorage,
			AzBlobConfig: config,
		}, nil

	case fs.S3 != nil:
		return buildS3FileSystem(ctx, shared, owner, fs.S3)

	default:
		return sftpgoclient.FileSystem{}, operrors.NewUserInputError(fsPath, "one of local, azureBlobStorage or s3 must be set")
	}
}

func buildS3FileSystem(ctx context.Context, shared *reconciler.SharedContext, owner Owner, s3 *sftpgov1alpha1.S3FileSystem) (sftpgoclient.FileSystem, error) {
	const s3Path = "spec.fileSystem.s3"

	endpoint := s3.Endpoint
	var creds S3Credentials
	switch {
	case s3.CredentialsSecretRef != nil:
		values, err := SecretValues(ctx, shared.Client, owner.Namespace, s3Path+".credentialsSecretRef",
			s3.CredentialsSecretRef.Name, consts.DataKeyAccessKey, consts.DataKeySecretKey)
		if err != nil {
			return sftpgoclient.FileSystem{}, err
		}
		creds = S3Credentials{AccessKey: values[consts.DataKeyAccessKey], SecretKey: values[consts.DataKeySecretKey]}
	case shared.RgwEnabled():
		var err error
		creds, err = EnsureRgwCredentials(ctx, shared.Rgw, shared.ClusterName, owner.Namespace, owner.Kind, owner.Name)
		if err != nil {
			return sftpgoclient.FileSystem{}, err
		}
		if endpoint == "" {
			endpoint = shared.RgwEndpoint
		}
	default:
		return sftpgoclient.FileSystem{}, operrors.NewUserInputError(s3Path+".credentialsSecretRef",
			"required when RGW credential provisioning is disabled")
	}

	if s3.CreateBucket && shared.NewBucketEnsurer != nil {
		agent, err := shared.NewBucketEnsurer(s3_agent.Options{
			AccessKey:      creds.AccessKey,
			SecretKey:      creds.SecretKey,
			Endpoint:       endpoint,
			Region:         s3.Region,
			ForcePathStyle: s3.ForcePathStyle,
			Timeout:        shared.RequestTimeout,
		})
		if err != nil {
			return sftpgoclient.FileSystem{}, operrors.NewExternalAPIError("s3 create_bucket", 0, err)
		}
		if err := agent.EnsureBucket(ctx, s3.Bucket); err != nil {
			return sftpgoclient.FileSystem{}, operrors.NewExternalAPIError("s3 create_bucket", 0, err)
		}
	}

	return sftpgoclient.FileSystem{
		Provider: sftpgoclient.FileSystemProviderS3,
		S3Config: &sftpgoclient.S3FsConfig{
			Bucket:         s3.Bucket,
			Region:         s3.Region,
			AccessKey:      creds.AccessKey,
			AccessSecret:   sftpgoclient.PlainSecret(creds.SecretKey),
			Endpoint:       endpoint,
			KeyPrefix:      s3.KeyPrefix,
			ForcePathStyle: s3.ForcePathStyle,
		},
	}, nil
}

func derefOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
