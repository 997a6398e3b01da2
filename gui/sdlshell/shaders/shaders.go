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

// Package shaders contains the GLSL programs used by the SDL shell.
package shaders

import _ "embed"

//go:embed "quad.vert"
var QuadVertexShader []byte

//go:embed "quad.frag"
var QuadFragShader []byte

//go:embed "gui.vert"
var GUIVertexShader []byte

//go:embed "gui.frag"
var GUIFragShader []byte
