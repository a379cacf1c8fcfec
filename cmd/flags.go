package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"workshop/internal/domain/money"
	"workshop/internal/usecase/backoffice"
)

const dateLayout = "2006-01-02"

func addBusinessFlag(command *cobra.Command) {
	command.Flags().Uint64("business", 0, "Business (tenant) id")
	_ = command.MarkFlagRequired("business")
}

func addIDFlag(command *cobra.Command, name string, usage string) {
	command.Flags().Uint64(name, 0, usage)
	_ = command.MarkFlagRequired(name)
}

func uintFlag(cmd *cobra.Command, name string) uint64 {
	value, _ := cmd.Flags().GetUint64(name)
	return value
}

// optionalUintFlag returns nil unless the flag was set explicitly.
func optionalUintFlag(cmd *cobra.Command, name string) *uint64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value := uintFlag(cmd, name)
	return &value
}

func amountFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	amount, err := money.ParseMajor(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	return amount, nil
}

func optionalAmountFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	amount, err := amountFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func optionalDateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be %s: %w", name, dateLayout, err)
	}
	return &value, nil
}

// parseOrderItem reads "description:quantity:unit_price". The description
// may itself contain colons.
func parseOrderItem(raw string) (backoffice.OrderItemInput, error) {
	priceAt := strings.LastIndex(raw, ":")
	if priceAt <= 0 {
		return backoffice.OrderItemInput{}, fmt.Errorf("item %q: want description:quantity:price", raw)
	}
	quantityAt := strings.LastIndex(raw[:priceAt], ":")
	if quantityAt <= 0 {
		return backoffice.OrderItemInput{}, fmt.Errorf("item %q: want description:quantity:price", raw)
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(raw[quantityAt+1:priceAt]), 10, 64)
	if err != nil {
		return backoffice.OrderItemInput{}, fmt.Errorf("item %q: bad quantity: %w", raw, err)
	}
	price, err := money.ParseMajor(raw[priceAt+1:])
	if err != nil {
		return backoffice.OrderItemInput{}, fmt.Errorf("item %q: %w", raw, err)
	}
	description := strings.TrimSpace(raw[:quantityAt])
	if description == "" {
		return backoffice.OrderItemInput{}, errors.New("item description is required")
	}
	return backoffice.OrderItemInput{Description: description, Quantity: quantity, UnitPrice: price}, nil
}

func formatTime(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.UTC().Format(time.RFC3339)
}

func formatAmount(value *decimal.Decimal) string {
	if value == nil {
		return "-"
	}
	return value.StringFixed(2)
}
