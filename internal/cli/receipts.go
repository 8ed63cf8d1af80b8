package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/ddms-api/internal/client"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/workflow"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *App) receiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "receipts",
		Aliases: []string{"receipt", "r"},
		Short:   "Work with donation receipts",
	}
	cmd.AddCommand(a.receiptsListCmd())
	cmd.AddCommand(a.receiptsShowCmd())
	cmd.AddCommand(a.receiptsCreateCmd())
	cmd.AddCommand(a.receiptsActionsCmd())
	cmd.AddCommand(a.receiptsDoCmd())
	cmd.AddCommand(a.receiptsTransitionCmd())
	cmd.AddCommand(a.receiptsApproveCmd())
	cmd.AddCommand(a.receiptsPayCmd())
	cmd.AddCommand(a.receiptsApprovalsCmd())
	return cmd
}

func (a *App) requester() *client.Requester {
	return client.NewRequester(a.client, a.client.Session(), a.notify)
}

// loadReceipt is the common prologue of receipt commands.
func (a *App) loadReceipt(cmd *cobra.Command, id string) (*client.Receipt, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	r, err := a.client.GetReceipt(cmd.Context(), id)
	if err != nil {
		a.notify.Error(messageOf(err, "Could not load receipt"))
		return nil, reported(err)
	}
	return r, nil
}

func (a *App) receiptsListCmd() *cobra.Command {
	var state, customer string
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List receipts of the current store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			params := client.ListReceiptsParams{CustomerID: customer, Page: page, PerPage: perPage}
			if state != "" {
				s, err := enum.ParseReceiptState(state)
				if err != nil {
					return err
				}
				params.State = s
			}

			list, err := a.client.ListReceipts(cmd.Context(), params)
			if err != nil {
				a.notify.Error(messageOf(err, "Could not load receipts"))
				return reported(err)
			}
			if len(list.Receipts) == 0 {
				a.println("No receipts found.")
				return nil
			}

			a.outMu.Lock()
			defer a.outMu.Unlock()
			printReceiptTable(a.out, list.Receipts)
			if p := list.Pagination; p != nil && p.TotalPages > 1 {
				fmt.Fprintf(a.out, "\nPage %d of %d (%d receipts)\n", p.CurrentPage, p.TotalPages, p.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&state, "state", "s", "", "filter by state (e.g. unpaid, pending_approval)")
	cmd.Flags().StringVarP(&customer, "customer", "c", "", "filter by customer ID")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "receipts per page")
	return cmd
}

func (a *App) receiptsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <receipt-id>",
		Short: "Show a receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadReceipt(cmd, args[0])
			if err != nil {
				return err
			}
			a.outMu.Lock()
			defer a.outMu.Unlock()
			printReceipt(a.out, r)
			fmt.Fprintln(a.out)
			printActions(a.out, workflow.Actions(r.ReceiptState, a.client.Session()))
			return nil
		},
	}
}

func (a *App) receiptsActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions <receipt-id>",
		Short: "List the actions you can take on a receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadReceipt(cmd, args[0])
			if err != nil {
				return err
			}
			a.outMu.Lock()
			defer a.outMu.Unlock()
			printActions(a.out, workflow.Actions(r.ReceiptState, a.client.Session()))
			return nil
		},
	}
}

// parseItem parses "particular-id=amount".
func parseItem(s string) (client.ReceiptItem, error) {
	pid, amt, ok := strings.Cut(s, "=")
	if !ok || pid == "" {
		return client.ReceiptItem{}, fmt.Errorf("invalid item %q, want particular-id=amount", s)
	}
	amount, err := decimal.NewFromString(amt)
	if err != nil || !amount.IsPositive() {
		return client.ReceiptItem{}, fmt.Errorf("invalid amount in item %q", s)
	}
	return client.ReceiptItem{ParticularID: pid, Amount: amount}, nil
}

func (a *App) receiptsCreateCmd() *cobra.Command {
	var customer, date, ref, mode, details string
	var items []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft receipt",
		Example: `  ddmsctl receipts create --customer 3f0c... \
    --item 9a1b...=500 --item 77de...=250.50 --payment-mode cash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if customer == "" {
				return errors.New("--customer is required")
			}
			if len(items) == 0 {
				return errors.New("at least one --item is required")
			}

			in := client.CreateReceiptInput{
				Date:            date,
				ReferenceNumber: ref,
				CustomerID:      customer,
				PaymentDetails:  details,
			}
			if in.Date == "" {
				in.Date = a.clock.Now().Format(time.DateOnly)
			}
			if mode != "" {
				in.PaymentMode = enum.PaymentMode(strings.ToUpper(mode))
				if !in.PaymentMode.IsValid() {
					return fmt.Errorf("unknown payment mode %q", mode)
				}
			}
			for _, s := range items {
				it, err := parseItem(s)
				if err != nil {
					return err
				}
				in.Items = append(in.Items, it)
			}

			r, err := a.client.CreateReceipt(cmd.Context(), in)
			if err != nil {
				a.notify.Error(messageOf(err, "Could not create receipt"))
				return reported(err)
			}
			a.notify.Success(fmt.Sprintf("Receipt %s created", r.ReceiptNumber))
			a.outMu.Lock()
			defer a.outMu.Unlock()
			printReceipt(a.out, r)
			return nil
		},
	}

	cmd.Flags().StringVarP(&customer, "customer", "c", "", "customer ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "receipt date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&ref, "ref", "", "reference number")
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "particular-id=amount, repeatable")
	cmd.Flags().StringVar(&mode, "payment-mode", "", "cash, cheque or online")
	cmd.Flags().StringVar(&details, "details", "", "payment details")
	return cmd
}

// perform runs a Requester call and prints the refreshed receipt.
func (a *App) perform(cmd *cobra.Command, id string, run func(q *client.Requester, r *client.Receipt) error) error {
	r, err := a.loadReceipt(cmd, id)
	if err != nil {
		return err
	}
	if err := run(a.requester(), r); err != nil {
		return reported(err)
	}
	a.printf("%s is now %s\n", r.ReceiptNumber, badge(r.ReceiptState))
	return nil
}

func (a *App) receiptsDoCmd() *cobra.Command {
	var notes, details, amount string

	cmd := &cobra.Command{
		Use:   "do <receipt-id> <action>",
		Short: "Take one of the actions offered for a receipt",
		Long: `Take an action on a receipt. Run 'receipts actions <id>' to see
which actions the receipt's state and your permissions allow.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := client.ActionInput{Notes: notes, Details: details}
			if amount != "" {
				d, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q", amount)
				}
				in.Amount = d
			}
			kind := workflow.ActionKind(strings.ToLower(args[1]))
			return a.perform(cmd, args[0], func(q *client.Requester, r *client.Receipt) error {
				if _, ok := workflow.FindAction(r.ReceiptState, a.client.Session(), kind); !ok {
					msg := fmt.Sprintf("Action %q is not available for a %s receipt", kind, r.ReceiptState.Label())
					a.notify.Error(msg)
					return errors.New(msg)
				}
				return q.Perform(cmd.Context(), r, kind, in)
			})
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "notes recorded with the transition")
	cmd.Flags().StringVar(&amount, "amount", "", "payment amount for mark-paid and complete-payment")
	cmd.Flags().StringVar(&details, "details", "", "payment details")
	return cmd
}

func (a *App) receiptsTransitionCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "transition <receipt-id> <state>",
		Short: "Request a state change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := enum.ParseReceiptState(args[1])
			if err != nil {
				return err
			}
			return a.perform(cmd, args[0], func(q *client.Requester, r *client.Receipt) error {
				return q.RequestTransition(cmd.Context(), r, to, notes)
			})
		},
	}
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "notes recorded with the transition")
	return cmd
}

func (a *App) receiptsApproveCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "approve <receipt-id>",
		Short: "Approve a receipt pending approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.perform(cmd, args[0], func(q *client.Requester, r *client.Receipt) error {
				return q.Approve(cmd.Context(), r, notes)
			})
		},
	}
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "approval notes")
	return cmd
}

func (a *App) receiptsPayCmd() *cobra.Command {
	var amount, details string

	cmd := &cobra.Command{
		Use:   "pay <receipt-id>",
		Short: "Record a payment",
		Long:  "Record a payment. Without --amount the outstanding balance is paid.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d decimal.Decimal
			if amount != "" {
				var err error
				if d, err = decimal.NewFromString(amount); err != nil {
					return fmt.Errorf("invalid amount %q", amount)
				}
			}
			return a.perform(cmd, args[0], func(q *client.Requester, r *client.Receipt) error {
				if amount == "" {
					d = r.Outstanding()
				}
				return q.Pay(cmd.Context(), r, d, details)
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid (default outstanding balance)")
	cmd.Flags().StringVar(&details, "details", "", "payment details")
	return cmd
}

func (a *App) receiptsApprovalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approvals <receipt-id>",
		Short: "Show a receipt's transition history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			history, err := a.client.ReceiptApprovals(cmd.Context(), args[0])
			if err != nil {
				a.notify.Error(messageOf(err, "Could not load history"))
				return reported(err)
			}
			a.outMu.Lock()
			defer a.outMu.Unlock()
			printApprovals(a.out, history)
			return nil
		},
	}
}
