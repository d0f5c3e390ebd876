package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/leaddash/pkg/leadsdk"
)

type command struct {
	authenticated bool
	run           func(ctx context.Context, app *Application, args []string) error
}

var commands = map[string]command{
	"forms":       {true, runForms},
	"form":        {true, runForm},
	"create-form": {true, runCreateForm},
	"leads":       {true, runLeads},
	"lead":        {true, runLead},
	"status":      {true, runStatus},
	"comment":     {true, runComment},
	"whoami":      {true, runWhoami},
	"logout":      {true, runLogout},
	"register":    {false, runRegister},
	"verify":      {false, runVerify},
	"forgot":      {false, runForgot},
}

const timeLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func wantArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	return nil
}

// ============================================================================
// Forms
// ============================================================================

func runForms(ctx context.Context, app *Application, _ []string) error {
	forms, err := app.client.ListForms(ctx)
	if err != nil {
		return err
	}

	tw := table(app.out)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCREATED")
	for _, f := range forms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Status, formatTime(f.CreatedAt))
	}
	return tw.Flush()
}

func runForm(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 1, "form <id>"); err != nil {
		return err
	}

	form, err := app.client.GetForm(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "%s (%s)\n", form.Name, form.Status)
	if form.Description != "" {
		fmt.Fprintln(app.out, form.Description)
	}
	fmt.Fprintf(app.out, "Submit URL: %s\n\n", app.client.SubmitURL(form.ID))

	tw := table(app.out)
	fmt.Fprintln(tw, "#\tLABEL\tTYPE\tREQUIRED\tOPTIONS")
	for _, f := range form.Fields {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\n", f.Order, f.Label, f.Type, f.Required, strings.Join(f.Options, ", "))
	}
	return tw.Flush()
}

func runCreateForm(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 1, "create-form <name> [description]"); err != nil {
		return err
	}

	var description string
	if len(args) > 1 {
		description = strings.Join(args[1:], " ")
	}

	resp, err := app.client.CreateForm(ctx, leadsdk.NewFormRequest(args[0], description, nil))
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Created form %s\n", resp.Form.ID)
	fmt.Fprintf(app.out, "Public key: %s\n", resp.PublicKey)
	fmt.Fprintf(app.out, "Submit URL: %s\n", app.client.SubmitURL(resp.Form.ID))
	return nil
}

// ============================================================================
// Leads
// ============================================================================

func runLeads(ctx context.Context, app *Application, args []string) error {
	fs := flag.NewFlagSet("leads", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	formID := fs.String("form", "", "only leads of this form")
	status := fs.String("status", "", "only leads with this status")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: leads [-form id] [-status new|contacted|closed]", ErrUsage)
	}

	filter := leadsdk.LeadFilter{FormID: *formID}
	if *status != "" {
		st, err := leadsdk.ParseLeadStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = st
	}

	leads, err := app.client.ListLeads(ctx, filter)
	if err != nil {
		return err
	}

	tw := table(app.out)
	fmt.Fprintln(tw, "ID\tFORM\tSTATUS\tCREATED")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Form.Label(), l.Status, formatTime(l.CreatedAt))
	}
	return tw.Flush()
}

func runLead(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 1, "lead <id>"); err != nil {
		return err
	}

	lead, err := app.client.GetLead(ctx, args[0])
	if err != nil {
		return err
	}

	comments, err := app.client.ListComments(ctx, lead.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Lead %s (%s) on %s, %s\n", lead.ID, lead.Status, lead.Form.Label(), formatTime(lead.CreatedAt))
	if lead.SourceIP != nil {
		fmt.Fprintf(app.out, "Source: %s\n", *lead.SourceIP)
	}

	tw := table(app.out)
	for _, k := range slices.Sorted(maps.Keys(lead.Data)) {
		fmt.Fprintf(tw, "%s\t%v\n", k, lead.Data[k])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(app.out, "\nComments (%d)\n", len(comments))
	for _, c := range comments {
		fmt.Fprintf(app.out, "  %s  %s\n", formatTime(c.CreatedAt), c.Content)
	}
	return nil
}

func runStatus(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 2, "status <id> <new|contacted|closed>"); err != nil {
		return err
	}

	status, err := leadsdk.ParseLeadStatus(args[1])
	if err != nil {
		return err
	}

	lead, err := app.client.UpdateLeadStatus(ctx, args[0], status)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Lead %s is now %s\n", lead.ID, lead.Status)
	return nil
}

func runComment(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 2, "comment <id> <text>"); err != nil {
		return err
	}

	comment, err := app.client.AddComment(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Added comment %s\n", comment.ID)
	return nil
}

// ============================================================================
// Session
// ============================================================================

func runWhoami(_ context.Context, app *Application, _ []string) error {
	claims, err := app.client.Session().Claims()
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}

	fmt.Fprintf(app.out, "Signed in as %s\n", claims.Identity())
	if left := claims.ExpiresIn(time.Now()); left > 0 {
		fmt.Fprintf(app.out, "Access token expires in %s\n", left.Round(time.Second))
	}
	return nil
}

func runLogout(ctx context.Context, app *Application, _ []string) error {
	app.shell.Logout(ctx)
	fmt.Fprintln(app.out, "Logged out")
	return nil
}

// ============================================================================
// Account
// ============================================================================

func runRegister(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 2, "register <email> <password>"); err != nil {
		return err
	}

	msg, err := app.client.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, msg)
	return nil
}

func runVerify(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 1, "verify <token>"); err != nil {
		return err
	}

	res, err := app.client.VerifyEmail(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, res.Message)
	if !res.Verified {
		return leadsdk.ErrVerificationFailed
	}
	return nil
}

func runForgot(ctx context.Context, app *Application, args []string) error {
	if err := wantArgs(args, 1, "forgot <email>"); err != nil {
		return err
	}

	msg, err := app.client.ForgotPassword(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, msg)
	return nil
}
