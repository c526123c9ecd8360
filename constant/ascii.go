package constant

// AsciiArtLogo is the application's ASCII art banner.
const AsciiArtLogo = `
     _  _  _  __  __  ___  _   _  ___
    | \| || ||  \/  || _ )| | | |/ __|
    | .  || || |\/| || _ \| |_| |\__ \
    |_|\_||_||_|  |_||___/ \___/ |___/
`
