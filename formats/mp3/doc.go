// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio using github.com/hajimehoshi/go-mp3.
// Output is always 2-channel interleaved PCM at the file's sample rate.
package mp3
