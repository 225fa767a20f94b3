package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// Entity helpers are supplied by BookEnv and CommentEnv, not by the compiler.
var (
	bookHelpers    = []string{"hasAuthor", "onShelf"}
	commentHelpers = []string{"byUser"}
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
	uses       []string // entity helpers called by the expression
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	uses, err := entityHelpersUsed(expression)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to parse expression",
			Err:        err,
		}
	}
	if slices.ContainsFunc(uses, isBookHelper) && slices.ContainsFunc(uses, isCommentHelper) {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "book helpers and comment helpers cannot be combined",
		}
	}

	// Entity fields are only known at run time.
	program, err := expr.Compile(expression,
		expr.Env(compileEnvironment(c.helperFuncs)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
		uses:       uses,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match runs the program against env. The compiler's helper functions are added to
// a copy of env. An entity helper the expression calls must be present in env,
// otherwise an *UnavailableHelperError is returned without running the program.
func (f *exprFilter) Match(env map[string]any) (bool, error) {
	for _, name := range f.uses {
		if _, ok := env[name]; !ok {
			return false, &UnavailableHelperError{Name: name}
		}
	}

	runtime := make(map[string]any, len(env)+len(f.helpers))
	maps.Copy(runtime, f.helpers)
	maps.Copy(runtime, env)

	result, err := expr.Run(f.program, runtime)
	if err != nil {
		return false, err
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// compileEnvironment declares the entity helpers with their signatures so that
// calls to them are type checked.
func compileEnvironment(helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+4)
	maps.Copy(env, helpers)
	env["hasAuthor"] = func(string) bool { return false }
	env["onShelf"] = func(string) bool { return false }
	env["byUser"] = func(string) bool { return false }
	return env
}

// entityHelpersUsed lists the entity helpers called anywhere in expression.
func entityHelpersUsed(expression string) ([]string, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	v := &helperVisitor{}
	ast.Walk(&tree.Node, v)
	return v.names, nil
}

type helperVisitor struct {
	names []string
}

func (v *helperVisitor) Visit(node *ast.Node) {
	call, ok := (*node).(*ast.CallNode)
	if !ok {
		return
	}
	ident, ok := call.Callee.(*ast.IdentifierNode)
	if !ok {
		return
	}
	if (isBookHelper(ident.Value) || isCommentHelper(ident.Value)) && !slices.Contains(v.names, ident.Value) {
		v.names = append(v.names, ident.Value)
	}
}

func isBookHelper(name string) bool    { return slices.Contains(bookHelpers, name) }
func isCommentHelper(name string) bool { return slices.Contains(commentHelpers, name) }

func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}
