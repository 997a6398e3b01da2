// This file is part of Dualview.
//
// Dualview is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dualview is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dualview.  If not, see <https://www.gnu.org/licenses/>.

package sdlshell

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/gui/sdlshell/shaders"
)

// number of samples kept for the FPS plot of each layer
const hudHistory = 120

// how often the HUD is redrawn when nothing else causes a redraw
const hudRefresh = 250 * time.Millisecond

// hud is the heads-up display of pipeline statistics. It is drawn with dear
// imgui over the composited layers.
type hud struct {
	shl *SdlShell

	context *imgui.Context
	io      imgui.IO

	shader      shader
	fontTexture uint32

	vboHandle      uint32
	elementsHandle uint32

	visible bool

	// time of the previous draw
	last time.Time

	// FPS history for each layer
	history map[string][]float32
}

func newHUD(shl *SdlShell) (*hud, error) {
	h := &hud{
		shl:     shl,
		context: imgui.CreateContext(nil),
		history: make(map[string][]float32),
	}
	h.io = imgui.CurrentIO()

	// we don't want to load or save an imgui ini file
	h.io.SetIniFilename("")

	err := h.shader.createProgram(string(shaders.GUIVertexShader), string(shaders.GUIFragShader))
	if err != nil {
		h.context.Destroy()
		return nil, fmt.Errorf("hud: %w", err)
	}

	// create font texture
	atlas := h.io.Fonts()
	atlas.AddFontDefault()
	image := atlas.TextureDataAlpha8()
	gl.GenTextures(1, &h.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, h.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height), 0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	atlas.SetTextureID(imgui.TextureID(h.fontTexture))

	gl.GenBuffers(1, &h.vboHandle)
	gl.GenBuffers(1, &h.elementsHandle)

	return h, nil
}

func (h *hud) destroy() {
	if h.vboHandle != 0 {
		gl.DeleteBuffers(1, &h.vboHandle)
		h.vboHandle = 0
	}
	if h.elementsHandle != 0 {
		gl.DeleteBuffers(1, &h.elementsHandle)
		h.elementsHandle = 0
	}
	if h.fontTexture != 0 {
		gl.DeleteTextures(1, &h.fontTexture)
		h.fontTexture = 0
	}
	h.shader.destroy()
	h.context.Destroy()
}

// due returns true if the HUD is visible and hasn't been drawn recently.
func (h *hud) due(now time.Time) bool {
	return h.visible && now.Sub(h.last) >= hudRefresh
}

// sample adds the current frame rate of every layer to the history.
func (h *hud) sample(stats []compositor.LayerStats) {
	for _, st := range stats {
		hist := append(h.history[st.Name], float32(st.FPS))
		if len(hist) > hudHistory {
			hist = hist[len(hist)-hudHistory:]
		}
		h.history[st.Name] = hist
	}
}

// draw the HUD for a window of the specified size in screen coordinates.
// The framebuffer size is in pixels.
func (h *hud) draw(now time.Time, winw float32, winh float32, fbw int, fbh int) {
	if !h.visible {
		return
	}

	var delta float32
	if !h.last.IsZero() {
		delta = float32(now.Sub(h.last).Seconds())
	}
	if delta <= 0 {
		delta = 1.0 / 60.0
	}
	h.last = now

	h.io.SetDisplaySize(imgui.Vec2{X: winw, Y: winh})
	h.io.SetDeltaTime(delta)

	x, y, state := sdl.GetMouseState()
	h.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	for i, button := range []uint32{sdl.BUTTON_LEFT, sdl.BUTTON_RIGHT, sdl.BUTTON_MIDDLE} {
		h.io.SetMouseButtonDown(i, (state&sdl.Button(button)) != 0)
	}

	stats := h.shl.cmp.Stats()
	h.sample(stats)

	imgui.NewFrame()
	h.window(stats)
	imgui.Render()

	h.render(winw, winh, fbw, fbh)
}

func (h *hud) window(stats []compositor.LayerStats) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{X: 0, Y: 0})
	imgui.SetNextWindowBgAlpha(0.6)
	imgui.BeginV("Pipeline", nil, imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoSavedSettings|imgui.WindowFlagsNoFocusOnAppearing)
	defer imgui.End()

	if gpu, ok := h.shl.env.GPU(); ok {
		imgui.Text(gpu.Renderer)
		imgui.Text(gpu.Version)
	}

	for _, st := range stats {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("%s: %d fps", st.Name, st.FPS))

		var top float32 = 60
		for _, v := range h.history[st.Name] {
			top = max(top, v)
		}
		imgui.PlotLinesV(fmt.Sprintf("##%s", st.Name), h.history[st.Name], 0, "", 0, top,
			imgui.Vec2{X: 200, Y: 30})

		imgui.Text(fmt.Sprintf("pool %d/%d  grown %d", st.Pool.InUse, st.Pool.Size, st.Pool.Grown))
		imgui.Text(fmt.Sprintf("painted %d  dropped %d", st.Producer.Painted, st.Producer.Dropped()))
		imgui.Text(fmt.Sprintf("uploaded %d  skipped %d  invalid %d",
			st.Scheduler.Uploaded, st.Scheduler.Skipped, st.Scheduler.Invalid))
		imgui.Text(fmt.Sprintf("latency %.1fms", float64(st.Scheduler.Latency.Microseconds())/1000.0))
		if st.Stage.MapFailures > 0 {
			imgui.Text(fmt.Sprintf("map failures %d", st.Stage.MapFailures))
		}
	}
}

// render translates the imgui draw data to OpenGL commands.
func (h *hud) render(winw float32, winh float32, fbw int, fbh int) {
	drawData := imgui.RenderedDrawData()

	// avoid rendering when minimised
	if fbw <= 0 || fbh <= 0 || winw <= 0 || winh <= 0 {
		return
	}

	st := storeGLState()
	defer st.restoreGLState()

	// scale coordinates for retina displays (screen coordinates != framebuffer coordinates)
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbw) / winw,
		Y: float32(fbh) / winh,
	})

	// alpha-blending enabled, scissor enabled
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	projMtx := [4][4]float32{
		{2.0 / winw, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -winh, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	gl.UseProgram(h.shader.handle)
	gl.Uniform1i(h.shader.texture, 0)
	gl.UniformMatrix4fv(h.shader.projMtx, 1, false, &projMtx[0][0])
	gl.BindSampler(0, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	// recreate the VAO every time
	var vaoHandle uint32
	gl.GenVertexArrays(1, &vaoHandle)
	gl.BindVertexArray(vaoHandle)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vboHandle)

	gl.EnableVertexAttribArray(uint32(h.shader.uv))
	gl.EnableVertexAttribArray(uint32(h.shader.position))
	gl.EnableVertexAttribArray(uint32(h.shader.color))

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointerWithOffset(uint32(h.shader.uv), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(uint32(h.shader.position), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(uint32(h.shader.color), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))

	indexSize := imgui.IndexBufferLayout()
	drawType := gl.UNSIGNED_SHORT
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		var indexBufferOffset uintptr

		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, h.vboHandle)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.elementsHandle)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clipRect := cmd.ClipRect()
				gl.Scissor(int32(clipRect.X), int32(fbh)-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), uint32(drawType), indexBufferOffset)
			}
			indexBufferOffset += uintptr(cmd.ElementCount() * indexSize)
		}
	}

	gl.DeleteVertexArrays(1, &vaoHandle)
}
