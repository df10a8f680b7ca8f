// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
)

// DelegatingSurface wraps an externally provided Backend and implements
// the spec's vtable-dispatch model: each of the five drawing entry
// points and the ContentSurface extras is tried on the backend first;
// a backend that returns ErrUnsupported (or simply omits the method, by
// embedding Backend's zero-value default) falls through to an internal
// ImageSurface that composites through the traps pipeline instead.
//
// This lets a partial backend - one that only accelerates, say, Fill -
// still present a complete Surface by delegating everything else to
// software compositing.
//
// Example integration:
//
//	type myBackend struct{ ... }
//	func (b *myBackend) Fill(path *surface.Path, style surface.FillStyle) error { ... }
//	func (b *myBackend) Stroke(*surface.Path, surface.StrokeStyle) error { return surface.ErrUnsupported }
//	// ...
//
//	surface.Register("accelerated", 100, func(opts surface.Options) (surface.Surface, error) {
//	    return surface.NewDelegatingSurface(opts.Width, opts.Height, &myBackend{}), nil
//	}, nil)
type DelegatingSurface struct {
	width    int
	height   int
	backend  Backend
	fallback *ImageSurface
	closed   bool
}

// Backend is the interface an accelerated implementation provides.
// Any method may return ErrUnsupported to delegate to the surface's
// internal ImageSurface fallback.
type Backend interface {
	// Clear fills the surface with a color.
	Clear(c color.Color) error

	// Fill fills a path with the given style.
	Fill(path *Path, style FillStyle) error

	// Stroke strokes a path with the given style.
	Stroke(path *Path, style StrokeStyle) error

	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, at Point, opts *DrawImageOptions) error

	// Flush ensures all pending operations are submitted.
	Flush() error

	// Readback reads the surface contents to an image.
	Readback() (*image.RGBA, error)

	// Close releases backend resources.
	Close() error
}

// NewDelegatingSurface creates a new delegating surface with the given
// backend. Returns an error if backend is nil.
func NewDelegatingSurface(width, height int, backend Backend) (*DelegatingSurface, error) {
	if backend == nil {
		return nil, errors.New("surface: Backend cannot be nil")
	}

	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &DelegatingSurface{
		width:    width,
		height:   height,
		backend:  backend,
		fallback: NewImageSurface(width, height),
	}, nil
}

// Width returns the surface width.
func (s *DelegatingSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *DelegatingSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *DelegatingSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	if err := s.backend.Clear(c); errors.Is(err, ErrUnsupported) {
		s.fallback.Clear(c)
	}
}

// Fill fills the given path using the specified style.
func (s *DelegatingSurface) Fill(path *Path, style FillStyle) {
	if s.closed || path == nil {
		return
	}
	if err := s.backend.Fill(path, style); errors.Is(err, ErrUnsupported) {
		s.fallback.Fill(path, style)
	}
}

// Stroke strokes the given path using the specified style.
func (s *DelegatingSurface) Stroke(path *Path, style StrokeStyle) {
	if s.closed || path == nil {
		return
	}
	if err := s.backend.Stroke(path, style); errors.Is(err, ErrUnsupported) {
		s.fallback.Stroke(path, style)
	}
}

// DrawImage draws an image at the specified position.
func (s *DelegatingSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}
	if err := s.backend.DrawImage(img, at, opts); errors.Is(err, ErrUnsupported) {
		s.fallback.DrawImage(img, at, opts)
	}
}

// Flush ensures all pending operations are complete on both the backend
// and the software fallback.
func (s *DelegatingSurface) Flush() error {
	if s.closed {
		return nil
	}
	if err := s.fallback.Flush(); err != nil {
		return err
	}
	return s.backend.Flush()
}

// Snapshot returns the current surface contents as an image, preferring
// the backend's readback when available.
func (s *DelegatingSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	img, err := s.backend.Readback()
	if err == nil {
		return img
	}
	return s.fallback.Snapshot()
}

// Close releases all resources associated with the surface.
func (s *DelegatingSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.fallback.Close()
	return s.backend.Close()
}

// Backend returns the underlying accelerated backend.
// Returns nil if the surface is closed.
func (s *DelegatingSurface) Backend() Backend {
	if s.closed {
		return nil
	}
	return s.backend
}

// Capabilities returns the surface capabilities.
func (s *DelegatingSurface) Capabilities() Capabilities {
	return Capabilities{
		SupportsSubSurface: false,
		SupportsResize:     false,
		SupportsClipping:   false,
		SupportsBlendModes: true,
		SupportsAntialias:  true,
		MaxWidth:           0,
		MaxHeight:          0,
	}
}

// Verify DelegatingSurface implements Surface interface.
var _ Surface = (*DelegatingSurface)(nil)
var _ CapableSurface = (*DelegatingSurface)(nil)
