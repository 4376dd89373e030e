package main

import (
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/silvafs/ext3img"
)

func main() {
	app := cli.App{
		Usage: "Manipulate a single-file indexed-allocation filesystem image",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Create or wipe an image",
				Action:    initFS,
				ArgsUsage: "IMAGE BLOCK_SIZE NUM_BLOCKS NUM_INODES",
			},
			{
				Name:      "add-file",
				Usage:     "Add a file, reading its content from a local file",
				Action:    addFile,
				ArgsUsage: "IMAGE PATH CONTENT_FILE",
			},
			{
				Name:      "add-dir",
				Usage:     "Add an empty directory",
				Action:    addDir,
				ArgsUsage: "IMAGE PATH",
			},
			{
				Name:      "rm",
				Usage:     "Remove a file or empty directory",
				Action:    remove,
				ArgsUsage: "IMAGE PATH",
			},
			{
				Name:      "mv",
				Usage:     "Rename or reparent a file or directory",
				Action:    move,
				ArgsUsage: "IMAGE OLD_PATH NEW_PATH",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func parseByteArg(context *cli.Context, index int, name string) byte {
	v, err := strconv.ParseUint(context.Args().Get(index), 10, 8)
	if err != nil {
		log.Fatalf("invalid %s: %s", name, err.Error())
	}
	return byte(v)
}

func initFS(context *cli.Context) error {
	image := context.Args().Get(0)
	blockSize := parseByteArg(context, 1, "BLOCK_SIZE")
	numBlocks := parseByteArg(context, 2, "NUM_BLOCKS")
	numInodes := parseByteArg(context, 3, "NUM_INODES")
	return ext3img.InitFS(image, blockSize, numBlocks, numInodes)
}

func addFile(context *cli.Context) error {
	image := context.Args().Get(0)
	path := context.Args().Get(1)
	contentFile := context.Args().Get(2)

	content, err := os.ReadFile(contentFile)
	if err != nil {
		log.Fatalf("cannot read %s: %s", contentFile, err.Error())
	}

	return ext3img.AddFile(image, path, content)
}

func addDir(context *cli.Context) error {
	image := context.Args().Get(0)
	path := context.Args().Get(1)
	return ext3img.AddDir(image, path)
}

func remove(context *cli.Context) error {
	image := context.Args().Get(0)
	path := context.Args().Get(1)
	return ext3img.Remove(image, path)
}

func move(context *cli.Context) error {
	image := context.Args().Get(0)
	oldPath := context.Args().Get(1)
	newPath := context.Args().Get(2)
	return ext3img.Move(image, oldPath, newPath)
}
