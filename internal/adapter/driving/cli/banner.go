package cli

import (
	"fmt"

	"github.com/diillson/tco-compare-go/pkg/console"
	"github.com/diillson/tco-compare-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$$  /$$$$$$   /$$$$$$ 
        |__  $$__/ /$$__  $$ /$$__  $$
           | $$   | $$  \__/| $$  \ $$
           | $$   | $$      | $$  | $$
           | $$   | $$      | $$  | $$
           | $$   | $$    $$| $$  | $$
           | $$   |  $$$$$$/|  $$$$$$/
           |__/    \______/  \______/ 
        `
	fmt.Println(console.BrightGreen(banner))
	fmt.Println(console.BrightCyan(fmt.Sprintf("Process Cost of Ownership Compare (v%s)", version.FormatVersion())))
}
