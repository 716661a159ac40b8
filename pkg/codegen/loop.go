package codegen

import "github.com/llir/llvm/ir"

// loopContext is one entry on the loop stack: the blocks break and
// continue branch to for the loop currently being lowered.
type loopContext struct {
	ContinueTarget *ir.Block
	BreakTarget    *ir.Block
}

// loopStack tracks nested loop contexts for break/continue lowering.
// Pushed on entering While/For, popped on leaving, including early exits
// from body lowering.
type loopStack struct {
	entries []loopContext
}

func (s *loopStack) Push(ctx loopContext) {
	s.entries = append(s.entries, ctx)
}

func (s *loopStack) Pop() {
	if len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

// Top returns the innermost loop context, or false if no loop is active.
func (s *loopStack) Top() (loopContext, bool) {
	if len(s.entries) == 0 {
		return loopContext{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func (s *loopStack) Depth() int {
	return len(s.entries)
}
