// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"log/slog"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sink []byte

func BenchmarkPrettyInt64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendInt64(buf, rand.Int64()) //#nosec G404
	}
}

func BenchmarkPrettyUint64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendUint64(buf, rand.Uint64(), false) //#nosec G404
	}
}

func TestPrettyInt64(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{-7, "-7"},
		{99999, "99999"},
		{-99999, "-99999"},
		{1157407, "1,157,407"},
		{-1157407, "-1,157,407"},
		{604800000, "604,800,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(appendInt64(nil, tt.n)))
	}
}

func TestPrettyUint64(t *testing.T) {
	tests := []struct {
		n        uint64
		expected string
	}{
		{0, "0"},
		{100000, "100,000"},
		{11574074074074074, "11,574,074,074,074,074"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(appendUint64(nil, tt.n, false)))
	}
}

func TestFormatSlogValue(t *testing.T) {
	tests := []struct {
		value    slog.Value
		expected string
	}{
		{slog.StringValue("plain"), "plain"},
		{slog.StringValue("with space"), `"with space"`},
		{slog.IntValue(1157407), "1,157,407"},
		{slog.BoolValue(true), "true"},
		{slog.AnyValue(big.NewInt(1e18)), "1000000000000000000"},
		{slog.AnyValue((*big.Int)(nil)), "<nil>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(FormatSlogValue(tt.value, nil)))
	}
}
