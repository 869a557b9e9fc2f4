package sftpgoclient

import "time"

// AccessToken is the response of the admin token endpoint.
type AccessToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// FileSystemProvider mirrors SFTPGo's numeric provider identifiers.
type FileSystemProvider int

const (
	FileSystemProviderLocal FileSystemProvider = iota
	FileSystemProviderS3
	FileSystemProviderGCS
	FileSystemProviderAzureBlobStorage
)

const (
	UserStatusDisabled = 0
	UserStatusEnabled  = 1
)

const SecretStatusPlain = "Plain"

// Secret is SFTPGo's envelope for sensitive configuration values.
type Secret struct {
	Status         string `json:"status,omitempty"`
	Payload        string `json:"payload,omitempty"`
	Key            string `json:"key,omitempty"`
	AdditionalData string `json:"additional_data,omitempty"`
	Mode           int    `json:"mode,omitempty"`
}

// PlainSecret wraps a clear-text value; SFTPGo encrypts it on its side.
func PlainSecret(payload string) *Secret {
	return &Secret{Status: SecretStatusPlain, Payload: payload}
}

type OSFsConfig struct {
	ReadBufferSize  int `json:"read_buffer_size,omitempty"`
	WriteBufferSize int `json:"write_buffer_size,omitempty"`
}

type S3FsConfig struct {
	Bucket         string  `json:"bucket"`
	Region         string  `json:"region,omitempty"`
	AccessKey      string  `json:"access_key,omitempty"`
	AccessSecret   *Secret `json:"access_secret,omitempty"`
	Endpoint       string  `json:"endpoint,omitempty"`
	KeyPrefix      string  `json:"key_prefix,omitempty"`
	ForcePathStyle bool    `json:"force_path_style,omitempty"`
}

type AzBlobFsConfig struct {
	Container           string  `json:"container,omitempty"`
	AccountName         string  `json:"account_name,omitempty"`
	AccountKey          *Secret `json:"account_key,omitempty"`
	SASURL              *Secret `json:"sas_url,omitempty"`
	Endpoint            string  `json:"endpoint,omitempty"`
	KeyPrefix           string  `json:"key_prefix,omitempty"`
	UploadPartSize      int64   `json:"upload_part_size,omitempty"`
	UploadConcurrency   int     `json:"upload_concurrency,omitempty"`
	DownloadPartSize    int64   `json:"download_part_size,omitempty"`
	DownloadConcurrency int     `json:"download_concurrency,omitempty"`
	AccessTier          string  `json:"access_tier,omitempty"`
	UseEmulator         bool    `json:"use_emulator,omitempty"`
}

// FileSystem is the storage backend of a user or a folder.
type FileSystem struct {
	Provider     FileSystemProvider `json:"provider"`
	OSConfig     *OSFsConfig        `json:"osconfig,omitempty"`
	S3Config     *S3FsConfig        `json:"s3config,omitempty"`
	AzBlobConfig *AzBlobFsConfig    `json:"azblobconfig,omitempty"`
}

type VirtualFolder struct {
	Name        string `json:"name"`
	VirtualPath string `json:"virtual_path"`
	QuotaSize   int64  `json:"quota_size,omitempty"`
	QuotaFiles  int    `json:"quota_files,omitempty"`
}

type User struct {
	ID             int64               `json:"id,omitempty"`
	Status         int                 `json:"status"`
	Username       string              `json:"username"`
	Description    string              `json:"description,omitempty"`
	Password       string              `json:"password,omitempty"`
	PublicKeys     []string            `json:"public_keys,omitempty"`
	HomeDir        string              `json:"home_dir"`
	Permissions    map[string][]string `json:"permissions"`
	QuotaSize      int64               `json:"quota_size,omitempty"`
	QuotaFiles     int                 `json:"quota_files,omitempty"`
	FileSystem     FileSystem          `json:"filesystem"`
	VirtualFolders []VirtualFolder     `json:"virtual_folders,omitempty"`
}

type Folder struct {
	ID          int64      `json:"id,omitempty"`
	Name        string     `json:"name"`
	MappedPath  string     `json:"mapped_path,omitempty"`
	Description string     `json:"description,omitempty"`
	FileSystem  FileSystem `json:"filesystem"`
}

// APIError is the error body returned by SFTPGo.
type APIError struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	switch {
	case e.Err != "" && e.Message != "":
		return e.Message + ": " + e.Err
	case e.Err != "":
		return e.Err
	default:
		return e.Message
	}
}
