package engine

// Op is a kind of host mutation applied by a render pass.
type Op uint8

const (
	OpSetText     Op = 0x01 // Update text content
	OpSetAttr     Op = 0x02 // Set/update attribute
	OpRemoveAttr  Op = 0x03 // Remove attribute
	OpInsertNode  Op = 0x04 // Append a new child
	OpRemoveNode  Op = 0x05 // Remove a surplus child
	OpReplaceNode Op = 0x07 // Replace node entirely
	OpSetValue    Op = 0x08 // Set control value
)

// Ops lists every Op in code order.
var Ops = []Op{OpSetText, OpSetAttr, OpRemoveAttr, OpInsertNode, OpRemoveNode, OpReplaceNode, OpSetValue}

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpInsertNode:
		return "InsertNode"
	case OpRemoveNode:
		return "RemoveNode"
	case OpReplaceNode:
		return "ReplaceNode"
	case OpSetValue:
		return "SetValue"
	default:
		return "Unknown"
	}
}

// OpCounts counts the operations applied by one pass.
type OpCounts map[Op]int

// Total returns the number of operations.
func (c OpCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// ByName returns the counts keyed by Op name, omitting zeros.
func (c OpCounts) ByName() map[string]int {
	out := make(map[string]int, len(c))
	for op, v := range c {
		if v != 0 {
			out[op.String()] = v
		}
	}
	return out
}
