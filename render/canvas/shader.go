package canvas

// discShaderSrc fills a unit quad with a hard-edged disc. custom.xy is the
// fragment's position on the quad in [-1, 1]; a point at distance exactly 1
// is inside. Vertex colors arrive straight and are premultiplied here.
const discShaderSrc = `//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4, custom vec4) vec4 {
	if length(custom.xy) > 1.0 {
		return vec4(0)
	}
	return vec4(color.rgb*color.a, color.a)
}
`
