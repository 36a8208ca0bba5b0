package service

const WelcomeEmail = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>

<body>
    <h2>Welcome to %s!</h2>
    <p>Your account <b>%s</b> is ready. Log in and start your adventure.</p>
</body>
</html>
`

const PasswordChangedEmail = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>

<body>
    <p>The password of your account <b>%s</b> was changed and every active session was signed out.</p>
    <p>If this wasn't you, recover the account with your recovery key or contact the %s staff.</p>
</body>
</html>
`
