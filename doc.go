// Package watermark restores the pixels beneath the fixed-position logo
// watermark stamped near the bottom-right corner of generated images.
//
// The package works entirely in memory on RGBA buffers; no network or GPU is
// required. It ships with embedded reference templates for the 48x48 and 96x96
// logo variants and offers interchangeable strategies: alpha-guided neighbor
// sampling ("remove"), reverse alpha blending ("unblend"), border-sampling
// inpainting ("inpaint"), and plain obscuring via box blur or solid fill.
package watermark
