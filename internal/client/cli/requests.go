package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"barangayconnect/internal/client/models"
)

func printRequests(requests []models.DocumentRequest) {
	if len(requests) == 0 {
		printlnFn("No document requests found.")
		return
	}
	for _, r := range requests {
		fmt.Printf("#%d  %s x%d — %s (%s)\n", r.ID, r.DocumentType, r.Copies, r.Purpose, r.Status)
		if r.Notes != "" {
			fmt.Printf("     notes: %s\n", r.Notes)
		}
	}
}

// Requests lists document requests: the user's own for residents, everything
// for staff, optionally filtered by status.
func (a *App) Requests(ctx context.Context) error {
	status, err := GetOptionalText(a.reader, "Filter by status", "", os.Stdout)
	if err != nil {
		return err
	}

	var requests []models.DocumentRequest
	if a.isStaff() {
		requests, err = a.docs.ListAll(ctx, models.RequestStatus(status))
	} else {
		requests, err = a.docs.ListMine(ctx, models.RequestStatus(status))
	}
	if err != nil {
		return err
	}

	printRequests(requests)
	return nil
}

// Request files a new document request.
func (a *App) Request(ctx context.Context) error {
	req := &models.DocumentRequest{}
	var err error

	if req.DocumentType, err = GetSimpleText(a.reader, "Document type (e.g. Barangay Clearance)", os.Stdout); err != nil {
		return err
	}
	if req.Purpose, err = GetSimpleText(a.reader, "Purpose", os.Stdout); err != nil {
		return err
	}

	copies, err := GetOptionalText(a.reader, "Copies", "1", os.Stdout)
	if err != nil {
		return err
	}
	if req.Copies, err = strconv.Atoi(copies); err != nil {
		return fmt.Errorf("copies must be a number")
	}

	out, err := a.docs.Submit(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Request #%d filed (%s).\n", out.ID, out.Status)
	return nil
}

func (a *App) readRequestID() (int64, error) {
	raw, err := GetSimpleText(a.reader, "Request id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("request id must be a number")
	}
	return id, nil
}

// CancelRequest withdraws one of the user's own requests.
func (a *App) CancelRequest(ctx context.Context) error {
	id, err := a.readRequestID()
	if err != nil {
		return err
	}
	if err := a.docs.Cancel(ctx, id); err != nil {
		return err
	}
	printlnFn("Request cancelled.")
	return nil
}

// SetRequestStatus drives a staff-side status transition.
func (a *App) SetRequestStatus(ctx context.Context) error {
	id, err := a.readRequestID()
	if err != nil {
		return err
	}
	status, err := GetSimpleText(a.reader, "New status (Approved, Rejected, For Print, For Pickup, Released...)", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := GetOptionalText(a.reader, "Notes", "", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.docs.SetStatus(ctx, id, models.RequestStatus(status), "", notes); err != nil {
		return err
	}
	printlnFn("Status updated.")
	return nil
}

// Notifications lists the current user's feed and offers to mark it read.
func (a *App) Notifications(ctx context.Context) error {
	items, err := a.notifs.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No notifications.")
		return nil
	}

	for _, n := range items {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s #%d %s\n", marker, n.ID, n.Message)
	}

	raw, err := GetOptionalText(a.reader, "Mark notification read (id)", "", os.Stdout)
	if err != nil || raw == "" {
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("notification id must be a number")
	}
	return a.notifs.MarkRead(ctx, id)
}
