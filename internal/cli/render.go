package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/sangkips/ddms-api/internal/client"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/workflow"
	"github.com/shopspring/decimal"
)

var badgeColors = map[string]color.Attribute{
	"gray":   color.FgHiBlack,
	"red":    color.FgRed,
	"yellow": color.FgYellow,
	"blue":   color.FgBlue,
	"green":  color.FgGreen,
	"orange": color.FgHiYellow,
}

// badge renders a receipt state in its display color.
func badge(s enum.ReceiptState) string {
	attr, ok := badgeColors[workflow.ColorClassFor(s)]
	if !ok {
		attr = color.FgHiBlack
	}
	return color.New(attr, color.Bold).Sprint(s.Label())
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func printReceiptTable(w io.Writer, receipts []client.Receipt) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tDATE\tDONOR\tTOTAL\tPAID\tSTATE")
	fmt.Fprintln(tw, "--\t------\t----\t-----\t-----\t----\t-----")
	for _, r := range receipts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.ReceiptNumber, r.Date, r.CustomerName,
			money(r.TotalAmount), money(r.PaidAmount), badge(r.ReceiptState))
	}
	tw.Flush()
}

func printReceipt(w io.Writer, r *client.Receipt) {
	fmt.Fprintf(w, "Receipt: %s (%s)\n", r.ReceiptNumber, r.ID)
	fmt.Fprintf(w, "State:   %s\n", badge(r.ReceiptState))
	fmt.Fprintf(w, "Date:    %s\n", r.Date)
	fmt.Fprintf(w, "Donor:   %s\n", r.CustomerName)
	if r.ReferenceNumber != "" {
		fmt.Fprintf(w, "Ref:     %s\n", r.ReferenceNumber)
	}
	if len(r.Items) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  PARTICULAR\tAMOUNT")
		for _, it := range r.Items {
			name := it.ParticularName
			if name == "" {
				name = it.ParticularID
			}
			fmt.Fprintf(tw, "  %s\t%s\n", name, money(it.Amount))
		}
		tw.Flush()
	}
	fmt.Fprintf(w, "Total:   %s\n", money(r.TotalAmount))
	fmt.Fprintf(w, "Paid:    %s\n", money(r.PaidAmount))
	fmt.Fprintf(w, "Due:     %s\n", money(r.Outstanding()))
	if r.PaymentMode != "" {
		fmt.Fprintf(w, "Mode:    %s\n", r.PaymentMode)
	}
	if r.ApprovedAt != nil {
		fmt.Fprintf(w, "Approved: %s\n", r.ApprovedAt.Format("2006-01-02 15:04"))
	}
}

func printActions(w io.Writer, actions []workflow.Action) {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No actions available.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tLABEL\tTARGET")
	for _, a := range actions {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Kind, a.Label, a.Target)
	}
	tw.Flush()
}

func printApprovals(w io.Writer, history []client.Approval) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No history.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tFROM\tTO\tBY\tNOTES")
	for _, h := range history {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			h.ApprovedAt.Format("2006-01-02 15:04"), h.FromState, h.ToState, h.ApprovedBy.Name, h.ApprovalNotes)
	}
	tw.Flush()
}
