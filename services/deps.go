package services

import "context"

// ObjectStorage is the outbound image store: upload returns a public URL,
// delete takes one back.
type ObjectStorage interface {
	UploadFile(ctx context.Context, data []byte, filename, contentType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// Mailer sends transactional email. Failures on best-effort sends are logged
// and swallowed by callers.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, to, resetURL string) error
	SendWelcomeEmail(ctx context.Context, to, name string) error
}
