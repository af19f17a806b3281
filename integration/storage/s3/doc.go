// Package s3 provides a configuration source that reads a dotenv object from
// Amazon S3 or an S3-compatible service (MinIO, Wasabi, DigitalOcean Spaces).
//
// Container platforms commonly ship environment files through S3. The object
// is parsed with the same rules as a local .env file:
//
//	src, err := s3.New(ctx, s3.Config{
//		Bucket: "deploy-config",
//		Key:    "wordpress/production.env",
//		Region: "eu-west-1",
//	})
//	if err != nil {
//		return err
//	}
//	env, err := source.LoadAll(ctx, source.Environ(), src)
//
// Static credentials are optional; without them the default AWS credential
// chain (env vars, shared config, IAM roles) is used.
//
// Errors are classified into ErrObjectNotFound, ErrBucketNotFound,
// ErrAccessDenied, ErrOperationTimeout, ErrOperationCanceled and
// ErrServiceUnavailable and can be checked with errors.Is.
package s3
