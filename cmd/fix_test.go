// File: cmd/fix_test.go
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayerSelection(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    []int
		wantErr bool
	}{
		{name: "all keyword", raw: "all", want: []int{1, 2, 3, 4, 5, 6}},
		{name: "all uppercase", raw: "ALL", want: []int{1, 2, 3, 4, 5, 6}},
		{name: "empty defaults to all", raw: "", want: []int{1, 2, 3, 4, 5, 6}},
		{name: "single id", raw: "3", want: []int{3}},
		{name: "unordered list is sorted", raw: "5,1,3", want: []int{1, 3, 5}},
		{name: "whitespace tolerated", raw: " 2 , 4 ", want: []int{2, 4}},
		{name: "unknown ids pass through to the resolver", raw: "99", want: []int{99}},
		{name: "non-numeric id", raw: "1,two", wantErr: true},
		{name: "trailing comma", raw: "1,", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLayerSelection(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
