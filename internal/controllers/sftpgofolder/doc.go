package sftpgofolder

// This package contains the controller that mirrors SftpgoFolder objects into SFTPGo virtual folders.
//
// Overall provisioning flow:
//
// 1. Validate the spec
// 2. Add a cleanup finalizer to the SftpgoFolder
// 3. Build the file system, provisioning RGW keys and the S3 bucket when asked to
// 4. Create the folder in SFTPGo, or update it if it already exists
// 5. Update the status of the SftpgoFolder
//
// Overall cleanup flow:
//
// 1. Remove the folder from SFTPGo
// 2. Remove the RGW user provisioned for it
// 3. Remove the cleanup finalizer from the SftpgoFolder
