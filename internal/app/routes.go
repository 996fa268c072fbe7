package app

import (
	"github.com/avencillado/blognest/internal/auth"
	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/middleware"
	"github.com/avencillado/blognest/internal/platform/jwt"
	"github.com/avencillado/blognest/internal/platform/router"
	"github.com/avencillado/blognest/internal/platform/validation"
	"github.com/avencillado/blognest/internal/post"
)

func mountAuthRoutes(r router.Router, handler *auth.Handler, validator validation.Validator, signer jwt.Signer, cfg *config.Config) {
	maxBodySize := cfg.Server.MaxBodyBytes
	requireToken := auth.RequireToken(signer, cfg.Cookie.Name)

	r.Post("/register", handler.Register,
		middleware.DecodePayload[auth.RegisterRequest](maxBodySize),
		middleware.ValidateInput[auth.RegisterRequest](validator))
	r.Patch("/register/send-verification-code", handler.SendVerifyCode, requireToken)
	r.Patch("/register/verify-verification-code", handler.VerifyCode,
		requireToken,
		middleware.DecodePayload[auth.VerifyCodeRequest](maxBodySize),
		middleware.ValidateInput[auth.VerifyCodeRequest](validator))
	r.Post("/login", handler.Login,
		middleware.DecodePayload[auth.LoginRequest](maxBodySize),
		middleware.ValidateInput[auth.LoginRequest](validator))
	r.Post("/logout", handler.Logout, requireToken)
	r.Patch("/change-password", handler.ChangePassword,
		requireToken,
		middleware.DecodePayload[auth.ChangePasswordRequest](maxBodySize),
		middleware.ValidateInput[auth.ChangePasswordRequest](validator))
	r.Patch("/reset-password/send-forgetPassword-code", handler.ForgotPassword,
		middleware.DecodePayload[auth.ForgotPasswordRequest](maxBodySize),
		middleware.ValidateInput[auth.ForgotPasswordRequest](validator))
	r.Patch("/reset-password/verify-forgetPassword-code", handler.ResetPassword,
		middleware.DecodePayload[auth.ResetPasswordRequest](maxBodySize),
		middleware.ValidateInput[auth.ResetPasswordRequest](validator))
}

func mountPostRoutes(r router.Router, handler *post.Handler, validator validation.Validator, signer jwt.Signer, cfg *config.Config) {
	maxBodySize := cfg.Server.MaxBodyBytes

	r.Group("/posts", func(gr router.Router) {
		gr.Post("/create", handler.Create,
			middleware.DecodePayload[post.CreatePostRequest](maxBodySize),
			middleware.ValidateInput[post.CreatePostRequest](validator))
		gr.Put("/update/{id}", handler.Update,
			middleware.DecodePayload[post.UpdatePostRequest](maxBodySize),
			middleware.ValidateInput[post.UpdatePostRequest](validator))
		gr.Get("/getPosts", handler.ListOwn)
		gr.Get("/getAllPosts", handler.ListAll)
		gr.Delete("/delete/{id}", handler.Delete)
	}, auth.RequireToken(signer, cfg.Cookie.Name))
}
