package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTransactionCode_Format(t *testing.T) {
	now := time.Date(2024, time.January, 15, 14, 30, 22, 0, time.Local)

	sale := &SalesTransaction{}
	sale.EnsureTransactionCode(now)

	require.Regexp(t, regexp.MustCompile(`^TXN-20240115-143022-\d{3}$`), sale.TransactionCode)
}

func TestEnsureTransactionCode_NeverRegenerates(t *testing.T) {
	sale := &SalesTransaction{TransactionCode: "TXN-20240101-090000-042"}

	sale.EnsureTransactionCode(time.Now())

	assert.Equal(t, "TXN-20240101-090000-042", sale.TransactionCode)
}
