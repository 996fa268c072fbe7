package message

const (
	InvalidUser      = "Invalid email/password."
	InvalidInput     = "Invalid input."
	InvalidCode      = "Invalid or expired code."
	ServerError      = "Something went wrong. Please try again."
	EnvErrFmt        = "environment variable is not set: %s"
	FmtErrStatusCode = "rec.Code = %d, want: %d"
)
