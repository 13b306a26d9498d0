package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Lzww0608/bsonuuid"
)

func newConvertCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <32 hex digits>",
		Short: "convert one stored UUID value between representations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromRep, err := bsonuuid.ParseRepresentation(from)
			if err != nil {
				return err
			}
			toRep, err := bsonuuid.ParseRepresentation(to)
			if err != nil {
				return err
			}

			data, err := hex.DecodeString(args[0])
			if err != nil {
				return errors.Wrap(err, "decoding hex input")
			}
			u, err := fromRep.Decode(data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%x %s\n", toRep.Encode(u), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", bsonuuid.Default().String(), "representation of the input bytes")
	cmd.Flags().StringVar(&to, "to", bsonuuid.Standard.String(), "representation of the output bytes")
	return cmd
}
