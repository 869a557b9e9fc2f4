package consts

const (
	DefaultServerName = "default"

	DataKeyAccessKey = "accessKey"
	DataKeySecretKey = "secretKey"

	ServerImmutableErrMessage     = "server is immutable"
	UsernameImmutableErrMessage   = "username is immutable"
	FolderNameImmutableErrMessage = "name is immutable"
	UsernameTakenErrMessage       = "username is already managed by another SftpgoUser on this server"
	FolderNameTakenErrMessage     = "folder name is already managed by another SftpgoFolder on this server"

	FinalizerPrefix  = "sftpgo.snappcloud.io/"
	CleanupFinalizer = FinalizerPrefix + "cleanup"

	EventReasonReconcileFailed = "ReconcileFailed"
	EventReasonSynced          = "Synced"
	EventReasonDeleted         = "Deleted"
)
