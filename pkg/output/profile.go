package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/clipshare/clipctl/pkg/client"
)

const gigabyte = 1 << 30

// WriteProfile renders the `clipctl me` summary.
func WriteProfile(w io.Writer, profile *client.Profile) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Username:\t%s\n", profile.User.Username)
	if profile.User.Email != "" {
		verified := "not verified"
		if profile.User.EmailVerifiedAt != nil {
			verified = "verified"
		}
		_, _ = fmt.Fprintf(tw, "Email:\t%s (%s)\n", profile.User.Email, verified)
	}
	_, _ = fmt.Fprintf(tw, "Tier:\t%s\n", profile.User.Tier)
	twoFactor := "disabled"
	if profile.User.TwoFactorEnabled {
		twoFactor = "enabled"
	}
	_, _ = fmt.Fprintf(tw, "2FA:\t%s\n", twoFactor)
	_, _ = fmt.Fprintf(tw, "Hosted clips:\t%d\n", profile.ClipCount)
	_, _ = fmt.Fprintf(tw, "Storage:\t%s\n", formatStorage(profile.StorageUsed, profile.StorageLimit))
	if profile.User.LastLoginAt != nil {
		_, _ = fmt.Fprintf(tw, "Last login:\t%s", formatTime(*profile.User.LastLoginAt))
		if profile.User.LastLoginIP != "" {
			_, _ = fmt.Fprintf(tw, " from %s", profile.User.LastLoginIP)
		}
		_, _ = fmt.Fprintln(tw)
	}
	_ = tw.Flush()
}

func formatStorage(used, limit int64) string {
	usedGB := float64(used) / gigabyte
	limitGB := float64(limit) / gigabyte
	if limit <= 0 {
		return fmt.Sprintf("%.2f GB", usedGB)
	}
	percentage := float64(used) / float64(limit) * 100
	return fmt.Sprintf("%.2f GB / %.0f GB (%.1f%%)", usedGB, limitGB, percentage)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
