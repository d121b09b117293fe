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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retr0h/taskboard/internal/auth"
	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/cli"
)

// userCmd represents the user command.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts in the configured store",
}

// userCreateCmd represents the userCreate command.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with an explicit role",
	Long: `Create an account directly in the configured store. Use it to bootstrap
the first super_admin; registration through the API always yields role user.
The memory backend does not outlive this command.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		roleName, _ := cmd.Flags().GetString("role")

		role, err := authtoken.ParseRole(roleName)
		if err != nil {
			cli.LogFatal(logger, "invalid role", err)
		}

		if appConfig.Store.Backend == "memory" {
			logger.Warn("memory backend is not persistent; the account is discarded on exit")
		}

		b, err := openBackend(ctx, logger, appConfig)
		if err != nil {
			cli.LogFatal(logger, "failed to open store", err, "backend", appConfig.Store.Backend)
		}
		defer b.Close()

		u, err := newIdentity(b).CreateUser(ctx, auth.RegisterInput{
			Name:     name,
			Email:    email,
			Password: password,
		}, role)
		if err != nil {
			cli.LogFatal(logger, "failed to create user", err)
		}

		fmt.Println()
		cli.PrintKV(os.Stdout, "ID", strconv.FormatInt(u.ID, 10), "Email", u.Email)
		cli.PrintKV(os.Stdout, "Name", u.Name, "Role", string(u.Role))
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	allowed := strings.Join(authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy), ", ")

	userCreateCmd.Flags().StringP("name", "n", "", "Display name")
	userCreateCmd.Flags().StringP("email", "e", "", "Login email")
	userCreateCmd.Flags().StringP("password", "p", "", "Initial password")
	userCreateCmd.Flags().
		StringP("role", "r", string(authtoken.RoleUser), fmt.Sprintf("Role (allowed: %s)", allowed))

	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
}
