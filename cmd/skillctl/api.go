package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/status"

	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/rpc"
)

var (
	flagLoginEmail    string
	flagLoginPassword string
	flagMatchLimit    int32
	flagListStatus    string
	flagListDirection string
	flagListPage      string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print a bearer token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := c.Accounts.Login(ctx, &rpc.LoginRequest{Email: flagLoginEmail, Password: flagLoginPassword})
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Signed in as %s, token valid until %s\n",
			resp.UserID, time.Unix(resp.ExpiresAt, 0).Format(time.RFC3339))
		fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := c.Accounts.Register(ctx, &rpc.RegisterRequest{Email: flagLoginEmail, Password: flagLoginPassword})
		if err != nil {
			return describe(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.UserID)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind --token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := c.Accounts.WhoAmI(ctx, &rpc.WhoAmIRequest{})
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tprofile=%t\n", resp.UserID, resp.Email, resp.HasProfile)
		return nil
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the best skill-exchange partners for the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := c.Matches.FindMatches(ctx, &rpc.FindMatchesRequest{Limit: flagMatchLimit})
		if err != nil {
			return describe(err)
		}
		if len(resp.Matches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matches yet. Add more skills to your profile.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SCORE\tUSER\tNAME\tTHEY TEACH YOU\tYOU TEACH THEM")
		for _, m := range resp.Matches {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				m.Score, m.UserID, m.DisplayName, skillNames(m.OverlapLearning), skillNames(m.OverlapTeaching))
		}
		return w.Flush()
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print how many connection requests are waiting for you",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := c.Connections.CountPending(ctx, &rpc.CountPendingRequest{})
		if err != nil {
			return describe(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Count)
		return nil
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect <user-id>",
	Short: "Send a connection request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := c.Connections.RequestConnection(ctx, &rpc.RequestConnectionRequest{RecipientID: args[0]})
		if err != nil {
			return describe(err)
		}
		printConnection(cmd, resp.Connection)
		return nil
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept <connection-id>",
	Short: "Accept a pending connection request",
	Args:  cobra.ExactArgs(1),
	RunE:  respondRunner(true),
}

var rejectCmd = &cobra.Command{
	Use:   "reject <connection-id>",
	Short: "Reject a pending connection request",
	Args:  cobra.ExactArgs(1),
	RunE:  respondRunner(false),
}

var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "List your connections, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		req := &rpc.ListConnectionsRequest{Status: flagListStatus, Direction: flagListDirection}
		if flagListPage != "" {
			req.PaginationToken = &flagListPage
		}
		resp, err := c.Connections.ListConnections(ctx, req)
		if err != nil {
			return describe(err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFROM\tTO\tSTATUS\tCREATED")
		for _, conn := range resp.Connections {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				conn.ID, conn.RequesterID, conn.RecipientID, conn.Status, conn.CreatedAt.Format(time.DateTime))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if resp.NextPaginationToken != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "more: --page %s\n", *resp.NextPaginationToken)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagLoginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&flagLoginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&flagLoginEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&flagLoginPassword, "password", "", "Password, at least 8 characters")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	matchesCmd.Flags().Int32Var(&flagMatchLimit, "limit", 0, "Maximum matches (0 = server default)")

	connectionsCmd.Flags().StringVar(&flagListStatus, "status", "", "pending, connected or rejected")
	connectionsCmd.Flags().StringVar(&flagListDirection, "direction", "", "incoming or outgoing")
	connectionsCmd.Flags().StringVar(&flagListPage, "page", "", "Pagination token from a previous call")

	rootCmd.AddCommand(registerCmd, loginCmd, whoamiCmd, matchesCmd, pendingCmd, connectCmd, acceptCmd, rejectCmd, connectionsCmd)
}

func respondRunner(accept bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		c, ctx, done, err := dial(cmd)
		if err != nil {
			return err
		}
		defer done()

		req := &rpc.RespondConnectionRequest{ConnectionID: args[0]}
		var resp *rpc.ConnectionResponse
		if accept {
			resp, err = c.Connections.AcceptConnection(ctx, req)
		} else {
			resp, err = c.Connections.RejectConnection(ctx, req)
		}
		if err != nil {
			return describe(err)
		}
		printConnection(cmd, resp.Connection)
		return nil
	}
}

func printConnection(cmd *cobra.Command, c domain.Connection) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s [%s]\n", c.ID, c.RequesterID, c.RecipientID, c.Status)
}

func skillNames(skills []domain.Skill) string {
	if len(skills) == 0 {
		return "-"
	}
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
		if s.Level != "" {
			names[i] += " (" + string(s.Level) + ")"
		}
	}
	return strings.Join(names, ", ")
}

// describe turns a status error into a message with a hint for the user.
func describe(err error) error {
	st := status.Convert(err)
	hint := map[svcErr.Category]string{
		svcErr.CategoryFixInput:     "check the input and try again",
		svcErr.CategoryNotFound:     "it does not exist",
		svcErr.CategoryTryAgain:     "it already exists",
		svcErr.CategoryNotAllowed:   "you are not allowed to do that",
		svcErr.CategoryInvalidState: "it changed in the meantime, refresh and retry",
		svcErr.CategorySignIn:       "sign in again with 'skillctl login'",
	}[svcErr.CategoryFromStatus(err)]
	if hint == "" {
		return fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
	return fmt.Errorf("%s: %s (%s)", st.Code(), st.Message(), hint)
}
