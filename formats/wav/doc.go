// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio decoding and a minimal 16-bit writer.
//
// Decoding is built on github.com/go-audio/wav and supports 8, 16, 24 and
// 32-bit PCM files. WriteWAV16 is the inverse path for mono 16-bit output
// and doubles as the fixture generator for decoder tests.
package wav
