package main

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices/fffe/cpu"
	"github.com/hexaflex/c8vm/devices/fffe/fb"
)

// Display renders the cpu framebuffer to the current OpenGL context.
type Display struct {
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	extent      int32
	pixels      [fb.Width * fb.Height]byte
	initialized bool
}

// NewDisplay creates a new, uninitialized display.
func NewDisplay() *Display {
	return &Display{}
}

// Startup initializes display resources. Requires a current OpenGL context.
func (d *Display) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	gl.Uniform4f(gl.GetUniformLocation(d.shader, glStr("foreground")), 0.4, 0.8, 1.0, 1.0)
	gl.Uniform4f(gl.GetUniformLocation(d.shader, glStr("background")), 0.05, 0.05, 0.1, 1.0)
	d.extent = gl.GetUniformLocation(d.shader, glStr("extent"))
	gl.Uniform2f(d.extent, float32(fb.LowWidth)/fb.Width, float32(fb.LowHeight)/fb.Height)

	d.tex = makeTexture(fb.Width, fb.Height)
	d.initialized = true
	return nil
}

// Shutdown clears up display resources.
func (d *Display) Shutdown() {
	if !d.initialized {
		return
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
}

// Update copies the framebuffer of c into the display texture, if it
// changed since the last call.
func (d *Display) Update(c *cpu.CPU) {
	if !d.initialized || !c.Dirty() {
		return
	}

	cols, rows := c.Columns(), c.Rows()
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			var v byte
			if x < cols && y < rows && c.Pixel(x, y) {
				v = 0xff
			}
			d.pixels[y*fb.Width+x] = v
		}
	}

	uploadTexture(d.tex, fb.Width, fb.Height, d.pixels[:])

	gl.UseProgram(d.shader)
	gl.Uniform2f(d.extent, float32(cols)/fb.Width, float32(rows)/fb.Height)

	c.SetDirty(false)
}

// Draw renders the display texture.
func (d *Display) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
