package cmd

import (
	"fmt"
	"os"

	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/spf13/cobra"
)

var dumpClassCmd = &cobra.Command{
	Use:   "dump-class [file.class]",
	Short: "Decode a class file and print its structure",
	Long: `Decode a .class file's constant pool header, this/super/interfaces,
fields, methods, and attribute names, for inspecting this compiler's own
output or any third-party class file it might read off a classpath.`,
	Args: cobra.ExactArgs(1),
	RunE: runDumpClass,
}

func init() {
	rootCmd.AddCommand(dumpClassCmd)
}

func runDumpClass(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	pc, err := classfile.Read(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}

	fmt.Printf("major=%d minor=%d access=0x%04x\n", pc.MajorVersion, pc.MinorVersion, pc.AccessFlags)
	fmt.Printf("this=%s\n", pc.ThisClass)
	if pc.SuperClass != "" {
		fmt.Printf("super=%s\n", pc.SuperClass)
	}
	for _, iface := range pc.Interfaces {
		fmt.Printf("interface=%s\n", iface)
	}

	fmt.Printf("fields (%d):\n", len(pc.Fields))
	for _, f := range pc.Fields {
		dumpMember("  ", f)
	}

	fmt.Printf("methods (%d):\n", len(pc.Methods))
	for _, m := range pc.Methods {
		dumpMember("  ", m)
	}

	fmt.Printf("attributes (%d):\n", len(pc.Attributes))
	for _, a := range pc.Attributes {
		fmt.Printf("  %s (%d bytes)\n", a.Name, len(a.Body))
	}

	return nil
}

func dumpMember(indent string, m classfile.ParsedMember) {
	fmt.Printf("%saccess=0x%04x %s %s\n", indent, m.AccessFlags, m.Name, m.Descriptor)
	for _, a := range m.Attributes {
		fmt.Printf("%s  %s (%d bytes)\n", indent, a.Name, len(a.Body))
	}
}
