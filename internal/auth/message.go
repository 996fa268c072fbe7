package auth

// Client-facing messages.
const (
	MsgRegisterSuccess = "Thank you for registering. Please verify your email to log in."
	MsgUserExists      = "Email is already registered."
	MsgLoggedIn        = "Logged in."
	MsgLoggedOut       = "Logged out."
	MsgNotVerified     = "Please verify your email before logging in."
	MsgAlreadyVerified = "Email is already verified."
	MsgUserNotFound    = "User not found."
	MsgFmtCodeSent     = "A verification code was sent to your email. It expires in %s."
	MsgVerifySuccess   = "Email verified."
	MsgCodeExpired     = "The code has expired. Please request a new one."
	MsgCodeMismatch    = "The code is incorrect."
	MsgWrongPassword   = "Current password is incorrect."
	MsgPasswordChanged = "Password changed."
	MsgResetCodeSent   = "If the email is registered, a reset code has been sent."
	MsgPasswordReset   = "Password has been reset. You can now log in."
)
