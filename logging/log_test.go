// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"io"
	"log"
	"testing"
)

func TestLogPrint(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	log.Print("hello log")
	assert.Contains(t, buf.String(), "hello log")
}

func TestLogrusPrint(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	logrus.Print("hello logrus")
	assert.Contains(t, buf.String(), "hello logrus")
}

func TestSetLevel(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	SetLevel("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	SetLevel("warn")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func BenchmarkLogrusPrint(b *testing.B) {
	SetOutput(io.Discard)
	for n := 0; n < b.N; n++ {
		logrus.Print(1, "two", true)
	}
}
