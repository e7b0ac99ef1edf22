package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// registerGeneratorFlags declares the generator-name flags shared by the
// commands that run the transform pipeline.
func registerGeneratorFlags(flags *pflag.FlagSet) {
	flags.String("factory", "Document", "factory class name emitted into generated calls")
	flags.String("create-element", "CreateElement", "factory method used to construct element nodes")
	flags.String("create-text", "CreateText", "factory method reserved for text nodes")
	flags.String("suffix", ".cs", "suffix appended to the source path for generated files")
}

// bindGeneratorFlags binds the invoked command's flag set into viper so that
// flag > env > config file precedence falls out of the config loader. Binding
// happens at run time because the generate and watch commands each carry
// their own copy of these flags, and viper keys are global.
func bindGeneratorFlags(flags *pflag.FlagSet) {
	viper.BindPFlag("generator.factory_name", flags.Lookup("factory"))
	viper.BindPFlag("generator.create_element_name", flags.Lookup("create-element"))
	viper.BindPFlag("generator.create_text_name", flags.Lookup("create-text"))
	viper.BindPFlag("files.output_suffix", flags.Lookup("suffix"))
}
