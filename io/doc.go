// Package io adapts the machine to the host: ROM images as byte
// streams, key presses from a reader, and the frame buffer as text.
package io
