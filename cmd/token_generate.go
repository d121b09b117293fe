// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/taskboard/internal/auth"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/cli"
	"github.com/retr0h/taskboard/internal/validation"
)

// TokenGenerator generates signed JWT tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		userID int64,
		email string,
		ttl time.Duration,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token",
	Long: `Generate a signed token for an existing account. The token carries only
the user id and email; the role is resolved from the store on every request.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Server.Security.SigningKey
		userID, _ := cmd.Flags().GetInt64("user-id")
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		if errMsg, ok := validation.Var(email, "required,email"); !ok {
			cli.LogFatal(logger, "invalid email", nil, "reason", errMsg)
		}

		var tm TokenGenerator = authtoken.New(logger)
		token, err := tm.Generate(signingKey, userID, email, ttl)
		if err != nil {
			cli.LogFatal(logger, "failed to generate token", err)
		}

		logger.Info(
			"generated token",
			slog.String("token", token),
			slog.Int64("user_id", userID),
			slog.Duration("ttl", ttl),
		)
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)

	tokenGenerateCmd.PersistentFlags().
		Int64P("user-id", "u", 0, "ID of the account the token authenticates")
	tokenGenerateCmd.PersistentFlags().
		StringP("email", "e", "", "Email of the account")
	tokenGenerateCmd.PersistentFlags().
		Duration("ttl", auth.DefaultTokenTTL, "Token lifetime")

	_ = tokenGenerateCmd.MarkPersistentFlagRequired("user-id")
	_ = tokenGenerateCmd.MarkPersistentFlagRequired("email")
}
