package sftpgouser

// This package contains the controller that mirrors SftpgoUser objects into SFTPGo users.
//
// controller.go registers the controller with the manager through the reconciler driver.
//
// handler.go is the entrypoint for the reconciliation logic. It decides to provision or to clean up
// based on the deletionTimestamp of the SftpgoUser being reconciled. Failures are returned to the
// driver, which applies the retry policy.

// Overall provisioning flow:
//
// 1. Validate the spec
// 2. Add a cleanup finalizer to the SftpgoUser
// 3. Read the password secret, if any
// 4. Build the file system, provisioning RGW keys and the S3 bucket when asked to
// 5. Create the user in SFTPGo, or update it if it already exists
// 6. Update the status of the SftpgoUser

// Overall cleanup flow:
//
// 1. Remove the user from SFTPGo
// 2. Remove the RGW user provisioned for it
// 3. Remove the cleanup finalizer from the SftpgoUser
