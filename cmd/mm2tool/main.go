// Command mm2tool inspects and edits MM2's on-disk assets and save files:
// XXTEA-encrypted asset blobs, and save files that additionally wrap a
// version-tagged HXON object graph.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"github.com/0xAdk/mm2-tool/internal/hxon"
	"github.com/0xAdk/mm2-tool/internal/hxonjson"
	"github.com/0xAdk/mm2-tool/internal/manifest"
	"github.com/0xAdk/mm2-tool/internal/mm2cli"
	"github.com/0xAdk/mm2-tool/internal/savefile"
	"github.com/0xAdk/mm2-tool/internal/xxtea"
)

func main() {
	mm2cli.SetupLogging(logging.NOTICE)

	app := cli.NewApp()
	app.Name = "mm2tool"
	app.Usage = "inspect and edit MM2 assets and save files"
	app.Commands = []cli.Command{
		cryptCommand(),
		haxeCommand(),
		savetoolCommand(),
		manifestCommand(),
	}

	mm2cli.Run(app)
}

func keyFlag(def string) cli.StringFlag {
	return cli.StringFlag{
		Name:  "key",
		Value: def,
		Usage: "16-byte XXTEA key",
	}
}

func outputFlag() cli.StringFlag {
	return cli.StringFlag{
		Name:     "output, o",
		Usage:    "path to write the result to",
		Required: true,
	}
}

func formatFlag() cli.StringFlag {
	return cli.StringFlag{
		Name:  "format",
		Value: "auto",
		Usage: "auto, debug, or json",
	}
}

func requireArg(c *cli.Context, pos int, name string) (string, error) {
	v := c.Args().Get(pos)
	if v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

// announceWrote prints a success line after a command finishes writing its
// output file.
func announceWrote(output string, n int) {
	fmt.Fprintln(os.Stderr, mm2cli.Green(fmt.Sprintf("mm2tool ▶ wrote %d bytes to %s", n, output)))
}

// announceReading prints an informational line naming the file a command is
// about to read, highlighting the path the way the teacher highlights an
// inline command name.
func announceReading(file string) {
	fmt.Fprintln(os.Stderr, "mm2tool ▶ reading "+mm2cli.Cyan(file))
}

func cryptCommand() cli.Command {
	return cli.Command{
		Name:  "crypt",
		Usage: "XXTEA encryption and decryption of raw asset bytes",
		Subcommands: []cli.Command{
			{
				Name:  "encrypt",
				Usage: "encrypt FILE under the asset key",
				Flags: []cli.Flag{keyFlag(mm2cli.DefaultAssetKey), outputFlag()},
				Action: func(c *cli.Context) error {
					return runCrypt(c, xxtea.EncryptPadded)
				},
			},
			{
				Name:  "decrypt",
				Usage: "decrypt FILE under the asset key",
				Flags: []cli.Flag{keyFlag(mm2cli.DefaultAssetKey), outputFlag()},
				Action: func(c *cli.Context) error {
					return runCrypt(c, xxtea.DecryptPadded)
				},
			},
		},
	}
}

func runCrypt(c *cli.Context, transform func([]byte, []byte) ([]byte, error)) error {
	file, err := requireArg(c, 0, "FILE")
	if err != nil {
		return err
	}

	key, err := mm2cli.ParseKey(c.String("key"))
	if err != nil {
		return err
	}

	announceReading(file)
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	out, err := transform(data, key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.String("output"), out, 0o644); err != nil {
		return err
	}
	announceWrote(c.String("output"), len(out))
	return nil
}

func haxeCommand() cli.Command {
	return cli.Command{
		Name:  "haxe",
		Usage: "HXON textual serialization round-trip",
		Subcommands: []cli.Command{
			{
				Name:   "encode",
				Usage:  "read JSON from FILE and write HXON text",
				Flags:  []cli.Flag{outputFlag(), formatFlag()},
				Action: haxeEncodeCommand,
			},
			{
				Name:   "decode",
				Usage:  "read HXON text from FILE and write a debug dump or JSON",
				Flags:  []cli.Flag{outputFlag(), formatFlag()},
				Action: haxeDecodeCommand,
			},
		},
	}
}

func haxeEncodeCommand(c *cli.Context) error {
	file, err := requireArg(c, 0, "FILE")
	if err != nil {
		return err
	}
	output := c.String("output")

	if mm2cli.GuessFormat(c.String("format"), output) == mm2cli.FormatDebug {
		return mm2cli.ErrFormatRequired
	}

	announceReading(file)
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	values, err := hxonjson.Unmarshal(data)
	if err != nil {
		return err
	}

	text := hxon.Encode(values)
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return err
	}
	announceWrote(output, len(text))
	return nil
}

func haxeDecodeCommand(c *cli.Context) error {
	file, err := requireArg(c, 0, "FILE")
	if err != nil {
		return err
	}
	output := c.String("output")

	announceReading(file)
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	values, err := hxon.Decode(data)
	if err != nil {
		return err
	}

	return writeDecoded(values, output, mm2cli.GuessFormat(c.String("format"), output))
}

func writeDecoded(values []hxon.Value, output string, format mm2cli.Format) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case mm2cli.FormatJSON:
		data, err := hxonjson.MarshalIndent(values)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
	default:
		if err := hxon.Dump(f, values); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr, mm2cli.Green(fmt.Sprintf("mm2tool ▶ wrote %d values to %s", len(values), output)))
	return nil
}

func savetoolCommand() cli.Command {
	return cli.Command{
		Name:  "savetool",
		Usage: "the full save-file pipeline: padded cipher, version tag, HXON",
		Subcommands: []cli.Command{
			{
				Name:   "encode",
				Usage:  "read JSON from FILE and write an encrypted save file",
				Flags:  []cli.Flag{keyFlag(mm2cli.DefaultSaveKey), outputFlag(), formatFlag()},
				Action: savetoolEncodeCommand,
			},
			{
				Name:   "decode",
				Usage:  "decrypt FILE and write a debug dump or JSON",
				Flags:  []cli.Flag{keyFlag(mm2cli.DefaultSaveKey), outputFlag(), formatFlag()},
				Action: savetoolDecodeCommand,
			},
		},
	}
}

func savetoolEncodeCommand(c *cli.Context) error {
	file, err := requireArg(c, 0, "FILE")
	if err != nil {
		return err
	}

	if mm2cli.GuessFormat(c.String("format"), c.String("output")) == mm2cli.FormatDebug {
		return mm2cli.ErrFormatRequired
	}

	key, err := mm2cli.ParseKey(c.String("key"))
	if err != nil {
		return err
	}

	announceReading(file)
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	sf, err := decodeSaveFileJSON(data)
	if err != nil {
		return err
	}

	plaintext := savefile.Encode(sf)

	out, err := xxtea.EncryptPadded([]byte(plaintext), key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.String("output"), out, 0o644); err != nil {
		return err
	}
	announceWrote(c.String("output"), len(out))
	return nil
}

func savetoolDecodeCommand(c *cli.Context) error {
	file, err := requireArg(c, 0, "FILE")
	if err != nil {
		return err
	}
	output := c.String("output")

	key, err := mm2cli.ParseKey(c.String("key"))
	if err != nil {
		return err
	}

	announceReading(file)
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	plaintext, err := xxtea.DecryptPadded(data, key)
	if err != nil {
		return err
	}

	sf, err := savefile.Decode(plaintext)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch mm2cli.GuessFormat(c.String("format"), output) {
	case mm2cli.FormatJSON:
		if err := encodeSaveFileJSON(f, sf); err != nil {
			return err
		}
	default:
		if _, err := f.WriteString("[" + sf.Version + "]\n"); err != nil {
			return err
		}
		if err := hxon.Dump(f, sf.Values); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr, mm2cli.Green(fmt.Sprintf("mm2tool ▶ wrote %d values to %s", len(sf.Values), output)))
	return nil
}

func manifestCommand() cli.Command {
	return cli.Command{
		Name:   "manifest",
		Usage:  "manage the mm2 asset manifest",
		Hidden: true,
		Subcommands: []cli.Command{
			{
				Name:   "generate",
				Usage:  "walk PATH/assets and PATH/libraries and write an HXON manifest",
				Flags:  []cli.Flag{outputFlag()},
				Action: manifestGenerateCommand,
			},
		},
	}
}

func manifestGenerateCommand(c *cli.Context) error {
	path, err := requireArg(c, 0, "PATH")
	if err != nil {
		return err
	}

	entries, err := manifest.Generate(path, func(msg string) {
		mm2cli.Log().Warning(msg)
		fmt.Fprintln(os.Stderr, mm2cli.Yellow("mm2tool ▶ warning: "+msg))
	})
	if err != nil {
		return err
	}

	data := hxon.Encode([]hxon.Value{entries})
	if err := os.WriteFile(c.String("output"), []byte(data), 0o644); err != nil {
		return err
	}
	announceWrote(c.String("output"), len(data))
	return nil
}

// saveFileJSON is the JSON shape `savetool encode`/`decode --format json`
// exchange: the version tag alongside the hxonjson encoding of the values.
type saveFileJSON struct {
	Version string            `json:"version"`
	Values  []json.RawMessage `json:"values"`
}

func decodeSaveFileJSON(data []byte) (*savefile.SaveFile, error) {
	var raw saveFileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	valuesJSON, err := json.Marshal(raw.Values)
	if err != nil {
		return nil, err
	}
	values, err := hxonjson.Unmarshal(valuesJSON)
	if err != nil {
		return nil, err
	}

	return &savefile.SaveFile{Version: raw.Version, Values: values}, nil
}

func encodeSaveFileJSON(w io.Writer, sf *savefile.SaveFile) error {
	valuesJSON, err := hxonjson.Marshal(sf.Values)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(struct {
		Version string          `json:"version"`
		Values  json.RawMessage `json:"values"`
	}{Version: sf.Version, Values: valuesJSON}, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}
