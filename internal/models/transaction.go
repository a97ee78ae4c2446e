package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type TransactionType string

const (
	TypeAddCategory    TransactionType = "add_category"
	TypeDeleteCategory TransactionType = "delete_category"
	TypeAddProduct     TransactionType = "add_product"
	TypeEditProduct    TransactionType = "edit_product"
	TypeDeleteProduct  TransactionType = "delete_product"
	TypeChangePassword TransactionType = "change_password"
	TypeLogout         TransactionType = "logout"
	TypeEditProfile    TransactionType = "edit_profile"
)

var transactionTypes = []TransactionType{
	TypeAddCategory, TypeDeleteCategory,
	TypeAddProduct, TypeEditProduct, TypeDeleteProduct,
	TypeChangePassword, TypeLogout, TypeEditProfile,
}

// TransactionTypes lists every known type.
func TransactionTypes() []TransactionType {
	return append([]TransactionType(nil), transactionTypes...)
}

func (t TransactionType) Valid() bool {
	for _, known := range transactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Transaction is one entry of a user's history. Details holds the variant
// that belongs to Type, or nil for types that carry none.
//
// Entries read from storage remember the bytes they were read from and are
// written back unchanged, so keys this build does not model survive.
type Transaction struct {
	ID        string
	UserID    string
	Type      TransactionType
	Timestamp string
	Details   TransactionDetails

	stored json.RawMessage
}

type transactionWire struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	Type      TransactionType    `json:"type"`
	Timestamp string             `json:"timestamp"`
	Details   TransactionDetails `json:"details,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	if t.stored != nil {
		return t.stored, nil
	}
	return json.Marshal(transactionWire{
		ID:        t.ID,
		UserID:    t.UserID,
		Type:      t.Type,
		Timestamp: t.Timestamp,
		Details:   t.Details,
	})
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w struct {
		ID        string          `json:"id"`
		UserID    string          `json:"userId"`
		Type      TransactionType `json:"type"`
		Timestamp string          `json:"timestamp"`
		Details   json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*t = Transaction{
		ID:        w.ID,
		UserID:    w.UserID,
		Type:      w.Type,
		Timestamp: w.Timestamp,
		Details:   decodeDetails(w.Type, w.Details),
		stored:    append(json.RawMessage(nil), data...),
	}
	return nil
}

// TransactionDetails is implemented by one struct per transaction type.
type TransactionDetails interface {
	Type() TransactionType
}

type CategoryAddedDetails struct {
	CategoryName string `json:"categoryName"`
}

type CategoryDeletedDetails struct {
	CategoryName string `json:"categoryName"`
}

type ProductAddedDetails struct {
	ProductID           string  `json:"productId,omitempty"`
	ProductName         string  `json:"productName"`
	QuantityAdded       int     `json:"quantityAdded"`
	NewPrice            float64 `json:"newPrice"`
	ProductCategoryName string  `json:"productCategoryName"`
}

type ProductEditedDetails struct {
	ProductID           string  `json:"productId,omitempty"`
	ProductName         string  `json:"productName"`
	OldQuantity         int     `json:"oldQuantity"`
	NewQuantity         int     `json:"newQuantity"`
	OldPrice            float64 `json:"oldPrice"`
	NewPrice            float64 `json:"newPrice"`
	ProductCategoryName string  `json:"productCategoryName"`
}

type ProductDeletedDetails struct {
	ProductID           string  `json:"productId,omitempty"`
	ProductName         string  `json:"productName"`
	QuantityRemoved     int     `json:"quantityRemoved"`
	OldPrice            float64 `json:"oldPrice"`
	ProductCategoryName string  `json:"productCategoryName"`
}

// ProfileEditedDetails keeps null for profile fields that were never set.
type ProfileEditedDetails struct {
	OldFirstName   *string `json:"oldFirstName"`
	NewFirstName   *string `json:"newFirstName"`
	OldLastName    *string `json:"oldLastName"`
	NewLastName    *string `json:"newLastName"`
	OldCompanyName *string `json:"oldCompanyName"`
	NewCompanyName *string `json:"newCompanyName"`
}

// UnknownDetails holds details this build cannot read as a typed variant:
// those of an unknown type, or of a known type with unexpected values.
type UnknownDetails struct {
	Kind   TransactionType
	Fields map[string]any
}

func (CategoryAddedDetails) Type() TransactionType { return TypeAddCategory }
func (CategoryDeletedDetails) Type() TransactionType { return TypeDeleteCategory }
func (ProductAddedDetails) Type() TransactionType { return TypeAddProduct }
func (ProductEditedDetails) Type() TransactionType { return TypeEditProduct }
func (ProductDeletedDetails) Type() TransactionType { return TypeDeleteProduct }
func (ProfileEditedDetails) Type() TransactionType { return TypeEditProfile }
func (d UnknownDetails) Type() TransactionType { return d.Kind }

func (d UnknownDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Fields)
}

// decodeDetails returns the typed variant for known types. Details that do not
// fit the variant, or belong to an unknown type, are kept as UnknownDetails.
func decodeDetails(typ TransactionType, raw json.RawMessage) TransactionDetails {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var (
		d   TransactionDetails
		err error
	)
	switch typ {
	case TypeAddCategory:
		d, err = decodeAs[CategoryAddedDetails](raw)
	case TypeDeleteCategory:
		d, err = decodeAs[CategoryDeletedDetails](raw)
	case TypeAddProduct:
		d, err = decodeAs[ProductAddedDetails](raw)
	case TypeEditProduct:
		d, err = decodeAs[ProductEditedDetails](raw)
	case TypeDeleteProduct:
		d, err = decodeAs[ProductDeletedDetails](raw)
	case TypeEditProfile:
		d, err = decodeAs[ProfileEditedDetails](raw)
	default:
		err = errUnknownType
	}
	if err == nil {
		return d
	}

	var fields map[string]any
	if json.Unmarshal(raw, &fields) != nil {
		fields = nil
	}
	return UnknownDetails{Kind: typ, Fields: fields}
}

var errUnknownType = errors.New("unknown transaction type")

func decodeAs[T TransactionDetails](raw json.RawMessage) (TransactionDetails, error) {
	var d T
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// Description is a one-line, human readable summary of the entry.
func (t Transaction) Description() string {
	switch d := t.Details.(type) {
	case CategoryAddedDetails:
		return fmt.Sprintf("Category %q added.", d.CategoryName)
	case CategoryDeletedDetails:
		return fmt.Sprintf("Category %q deleted.", d.CategoryName)
	case ProductAddedDetails:
		return fmt.Sprintf("Product %q (%d units) added to category %q.", d.ProductName, d.QuantityAdded, d.ProductCategoryName)
	case ProductEditedDetails:
		var b strings.Builder
		fmt.Fprintf(&b, "Product %q edited.", d.ProductName)
		fmt.Fprintf(&b, " Qty: %d -> %d.", d.OldQuantity, d.NewQuantity)
		fmt.Fprintf(&b, " Price: %s -> %s.", formatPrice(d.OldPrice), formatPrice(d.NewPrice))
		return b.String()
	case ProductDeletedDetails:
		return fmt.Sprintf("Product %q (%d units) deleted from category %q.", d.ProductName, d.QuantityRemoved, d.ProductCategoryName)
	case ProfileEditedDetails:
		return "Profile updated."
	}

	switch t.Type {
	case TypeAddCategory:
		return "Category added."
	case TypeDeleteCategory:
		return "Category deleted."
	case TypeAddProduct:
		return "Product added."
	case TypeEditProduct:
		return "Product edited."
	case TypeDeleteProduct:
		return "Product deleted."
	case TypeChangePassword:
		return "Password changed."
	case TypeLogout:
		return "Logged out."
	case TypeEditProfile:
		return "Profile updated."
	}
	return fmt.Sprintf("Unknown transaction (%s).", t.Type)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
