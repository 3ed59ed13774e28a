// Package services implements the driving port interfaces.
// Services read and write deck files directly and reach external
// tools and history storage through driven ports.
package services
