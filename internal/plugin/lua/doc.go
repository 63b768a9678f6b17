// Package lua lets users define custom operators in Lua.
//
// A loaded chunk registers operators through the injected occur table:
//
//	occur.register("reverse", function(lines, index, total)
//	    local out = {}
//	    for i = #lines, 1, -1 do
//	        out[#out + 1] = lines[i]
//	    end
//	    return out
//	end)
//
// The operator function receives the occurrence's current lines, the
// 1-based occurrence index and the total count. It returns a table of
// replacement lines, a single string, or nil/false to skip the
// occurrence. The Lua environment is sandboxed: no file, shell, or
// disk-backed module access.
package lua
