package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rjkoch/diffpy.srfit/array"
	"github.com/rjkoch/diffpy.srfit/engine/cpu"
	"github.com/rjkoch/diffpy.srfit/ufunc"
)

// opsCmd represents the ops command
var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Inspect and evaluate elementwise functions",
	Long:  `Commands for listing the registered elementwise functions and evaluating them on literal operands.`,
}

// opsListCmd represents the ops list command
var opsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered elementwise functions",
	RunE:  runOpsList,
}

// opsEvalCmd represents the ops eval command
var opsEvalCmd = &cobra.Command{
	Use:   "eval <name> <operand>...",
	Short: "Evaluate a registered function on literal operands",
	Long: `Evaluate a registered elementwise function on literal operands.

Operands are float literals (2.5) or vectors ([1,2,3]). All vector
operands must share one length.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runOpsEval,
}

func init() {
	rootCmd.AddCommand(opsCmd)
	opsCmd.AddCommand(opsListCmd)
	opsCmd.AddCommand(opsEvalCmd)
}

type opInfo struct {
	Name string `json:"name"`
	NIn  int    `json:"nin"`
	NOut int    `json:"nout"`
}

func runOpsList(cmd *cobra.Command, args []string) error {
	infos := make([]opInfo, 0)
	for _, name := range ufunc.BuiltinNames() {
		fn, err := ufunc.Builtin(name)
		if err != nil {
			return err
		}
		infos = append(infos, opInfo{Name: fn.Name, NIn: fn.NIn, NOut: fn.NOut})
	}

	if outputFormat == "json" {
		out, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "In", "Out")
	for _, info := range infos {
		table.Append(info.Name, strconv.Itoa(info.NIn), strconv.Itoa(info.NOut))
	}
	table.Render()
	fmt.Printf("\nTotal functions: %d\n", len(infos))
	return nil
}

func runOpsEval(cmd *cobra.Command, args []string) error {
	fn, err := ufunc.Builtin(args[0])
	if err != nil {
		return err
	}

	operands := make([]any, 0, len(args)-1)
	for _, lit := range args[1:] {
		v, err := parseOperand(lit)
		if err != nil {
			return err
		}
		operands = append(operands, v)
	}

	op := ufunc.NewOperator(cpu.New())
	defer op.Close()
	if err := op.Bind(fn, ""); err != nil {
		return err
	}

	res, err := op.Call(operands...)
	if err != nil {
		return err
	}

	if tuple, ok := res.([]any); ok {
		for i, v := range tuple {
			fmt.Printf("[%d] %s\n", i, formatResult(v))
		}
		return nil
	}
	fmt.Println(formatResult(res))
	return nil
}

// parseOperand turns a literal into an operand: "2.5" or "[1,2,3]".
func parseOperand(lit string) (any, error) {
	if strings.HasPrefix(lit, "[") && strings.HasSuffix(lit, "]") {
		parts := strings.Split(strings.Trim(lit, "[]"), ",")
		vec := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid vector element %q in %q", p, lit)
			}
			vec = append(vec, v)
		}
		if len(vec) == 0 {
			return nil, fmt.Errorf("empty vector %q", lit)
		}
		return vec, nil
	}

	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid operand %q", lit)
	}
	return v, nil
}

func formatResult(v any) string {
	if raw, ok := v.(*array.Raw); ok {
		defer raw.Release()
		vals := make([]string, raw.NumElements())
		for i := range vals {
			vals[i] = strconv.FormatFloat(raw.ValueAt(i), 'g', -1, 64)
		}
		return "[" + strings.Join(vals, " ") + "]"
	}
	return fmt.Sprint(v)
}
