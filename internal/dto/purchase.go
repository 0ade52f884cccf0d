package dto

import (
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
)

// PurchaseFormResponse is the data needed to draw the purchase form.
type PurchaseFormResponse struct {
	Products      []ProductResponse `json:"products"`
	Denominations []int64           `json:"denominations"`
}

// PurchaseResponse is returned for a completed purchase (or an out-of-stock quick buy).
type PurchaseResponse struct {
	Completed        bool                       `json:"completed"`
	Message          string                     `json:"message"`
	ProductID        int64                      `json:"productID"`
	ProductName      string                     `json:"productName"`
	Quantity         int                        `json:"quantity,omitempty"`
	TotalPrice       string                     `json:"totalPrice,omitempty"`
	AmountInserted   string                     `json:"amountInserted,omitempty"`
	InsertedDetails  string                     `json:"insertedDetails,omitempty"`
	ChangeReturned   string                     `json:"changeReturned,omitempty"`
	ChangeDetails    string                     `json:"changeDetails,omitempty"`
	ChangeBreakdown  []domain.DenominationCount `json:"changeBreakdown,omitempty"`
	TransactionLogID int64                      `json:"transactionLogID,omitempty"`
	Warnings         []domain.FieldIssue        `json:"warnings,omitempty"`
	ContinueURL      string                     `json:"continueURL,omitempty"`
	HomeURL          string                     `json:"homeURL"`
}

// ToPurchaseResponse converts a receipt into its response DTO.
func ToPurchaseResponse(r *domain.PurchaseReceipt) PurchaseResponse {
	res := PurchaseResponse{
		Completed:   r.Completed,
		Message:     r.Message,
		ProductID:   r.Product.ProductID,
		ProductName: r.Product.Name,
		Warnings:    r.Issues,
		HomeURL:     "/",
	}
	if !r.Completed {
		return res
	}
	res.Quantity = r.Quantity
	res.TotalPrice = r.TotalPrice.StringFixed(2)
	res.AmountInserted = r.AmountInserted.StringFixed(2)
	res.InsertedDetails = r.InsertedDetails
	res.ChangeReturned = r.ChangeReturned.StringFixed(2)
	res.ChangeDetails = r.ChangeDetails
	res.ChangeBreakdown = r.ChangeBreakdown
	res.ContinueURL = "/purchase"
	if r.Log != nil {
		res.TransactionLogID = r.Log.LogID
	}
	return res
}

// PurchaseErrorResponse is returned when a purchase fails. For recoverable failures it
// echoes the selection and entered cash so the form can be shown again as submitted.
type PurchaseErrorResponse struct {
	Error             string                `json:"error"`
	Kind              string                `json:"kind"`
	ProductID         int64                 `json:"productID,omitempty"`
	Quantity          int                   `json:"quantity,omitempty"`
	Available         *int                  `json:"available,omitempty"`
	Price             string                `json:"price,omitempty"`
	AmountInserted    string                `json:"amountInserted,omitempty"`
	InsertedBreakdown string                `json:"insertedBreakdown,omitempty"`
	InsertedCounts    map[string]int64      `json:"insertedCounts,omitempty"`
	Form              *PurchaseFormResponse `json:"form,omitempty"`
}

// ToPurchaseErrorResponse converts a purchase failure into its response DTO.
func ToPurchaseErrorResponse(e *domain.PurchaseError) PurchaseErrorResponse {
	res := PurchaseErrorResponse{
		Error:     e.Message,
		Kind:      string(e.Kind),
		ProductID: e.ProductID,
		Quantity:  e.Quantity,
	}
	switch e.Kind {
	case domain.PurchaseInsufficientStock:
		available := e.Available
		res.Available = &available
	case domain.PurchaseInsufficientFunds:
		res.Price = e.Price.StringFixed(2)
		res.AmountInserted = e.InsertedAmount().StringFixed(2)
		res.InsertedBreakdown = e.Inserted.Format()
		res.InsertedCounts = make(map[string]int64, len(e.Inserted))
		for _, dc := range e.Inserted {
			res.InsertedCounts[domain.DenominationField(dc.Denomination)] = dc.Count
		}
	}
	return res
}
