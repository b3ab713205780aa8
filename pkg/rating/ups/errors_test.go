package ups_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/rating/pkg/rating/ups"
)

func TestErrorMessage_KnownCode(t *testing.T) {
	msg := ups.ErrorMessage("112111", "raw carrier text")
	assert.Equal(t, "Please provide a valid shipper number/Carrier Account.", msg)
}

func TestErrorMessage_UnknownCodeFallsBack(t *testing.T) {
	msg := ups.ErrorMessage("424242", "Something new went wrong")
	assert.Equal(t, "Something new went wrong", msg)
}

func TestServiceTypes(t *testing.T) {
	types := ups.ServiceTypes()
	assert.Len(t, types, 13)

	byCode := make(map[string]string, len(types))
	for _, s := range types {
		byCode[s.Code] = s.Name
	}
	assert.Equal(t, "UPS Ground", byCode["03"])
	assert.Contains(t, byCode, "96")
}

func TestAPIError_Error(t *testing.T) {
	err := &ups.APIError{Code: "250003", Description: "Invalid Access License number."}
	assert.Equal(t, "250003: Invalid Access License number.", err.Error())
}
